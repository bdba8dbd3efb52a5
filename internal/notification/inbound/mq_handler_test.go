package inbound

import (
	"context"
	"testing"
	"time"

	"github.com/ligtascommute/backend/internal/notification/usecase"
	"github.com/ligtascommute/backend/internal/pkg/instrument"
	"github.com/ligtascommute/backend/internal/pkg/messaging"
	"github.com/ligtascommute/backend/internal/pkg/uid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUC struct {
	inputs []usecase.ConsumeOTPRequestedInput
	err    error
}

func (f *fakeUC) ConsumeOTPRequested(_ context.Context, in usecase.ConsumeOTPRequestedInput) error {
	f.inputs = append(f.inputs, in)
	return f.err
}

type fakeMessage struct {
	body    []byte
	headers []messaging.Header
}

func (m fakeMessage) Body() []byte                { return m.body }
func (m fakeMessage) Headers() []messaging.Header { return m.headers }
func (fakeMessage) ID() string                    { return "msg-1" }
func (fakeMessage) Topic() string                 { return "account.otp.requested" }
func (fakeMessage) Timestamp() time.Time          { return time.Time{} }
func (fakeMessage) Ack(context.Context) error     { return nil }
func (fakeMessage) Nack(context.Context) error    { return nil }

func newTestHandler(uc uc) *MQHandler {
	return &MQHandler{uc: uc, uuid: uid.NewUUID(), ins: instrument.NewNoop()}
}

func TestOTPRequestedNotification(t *testing.T) {
	uc := &fakeUC{}
	h := newTestHandler(uc)

	body := `{"account_id":7,"email":"rider@example.com","name":"Juan Dela Cruz","code":"123456","expires_in_seconds":600,"purpose":"verification"}`
	msg := fakeMessage{
		body:    []byte(body),
		headers: []messaging.Header{{Key: "cID", Value: []byte("corr-123")}},
	}

	require.NoError(t, h.OTPRequestedNotification(context.Background(), msg))

	require.Len(t, uc.inputs, 1)
	in := uc.inputs[0]
	assert.Equal(t, int64(7), in.AccountID)
	assert.Equal(t, "rider@example.com", in.Email)
	assert.Equal(t, "123456", in.Code)
	assert.Equal(t, 600, in.ExpiresInSeconds)
	assert.Equal(t, "verification", in.Purpose)
}

func TestOTPRequestedNotification_BadJSON(t *testing.T) {
	uc := &fakeUC{}
	h := newTestHandler(uc)

	// Unparseable payloads are dropped so the broker does not redeliver them.
	err := h.OTPRequestedNotification(context.Background(), fakeMessage{body: []byte("{not json")})
	require.NoError(t, err)
	assert.Empty(t, uc.inputs)
}

func TestOTPRequestedNotification_ConsumerError(t *testing.T) {
	uc := &fakeUC{err: assert.AnError}
	h := newTestHandler(uc)

	body := `{"account_id":7,"email":"rider@example.com","name":"Juan","code":"123456","expires_in_seconds":600,"purpose":"verification"}`
	err := h.OTPRequestedNotification(context.Background(), fakeMessage{body: []byte(body)})
	assert.ErrorIs(t, err, assert.AnError)
}
