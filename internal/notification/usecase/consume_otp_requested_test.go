package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/ligtascommute/backend/internal/pkg/config"
	"github.com/ligtascommute/backend/internal/pkg/instrument"
	"github.com/ligtascommute/backend/internal/pkg/mail"
	"github.com/ligtascommute/backend/internal/pkg/validator"
	"github.com/ligtascommute/backend/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmail struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (f *fakeEmail) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestUsecase(t *testing.T, repo *fakeEmail) *Usecase {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
modules:
  notification:
    email_from: no-reply@ligtascommute.com
`))
	require.NoError(t, err)

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	return New(Dependency{
		RepoEmail:  repo,
		Validator:  v10,
		Config:     cfg,
		Instrument: instrument.NewNoop(),
	})
}

func TestConsumeOTPRequested(t *testing.T) {
	repo := &fakeEmail{}
	uc := newTestUsecase(t, repo)

	err := uc.ConsumeOTPRequested(context.Background(), ConsumeOTPRequestedInput{
		AccountID:        7,
		Email:            "rider@example.com",
		Name:             "Juan Dela Cruz",
		Code:             "123456",
		ExpiresInSeconds: 600,
		Purpose:          event.PurposeVerification,
	})
	require.NoError(t, err)

	require.Len(t, repo.sent, 1)
	msg := repo.sent[0]
	assert.Equal(t, "no-reply@ligtascommute.com", msg.From)
	assert.Equal(t, []string{"rider@example.com"}, msg.To)
	assert.Equal(t, "Your One-Time Password", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "Juan Dela Cruz")
	assert.Contains(t, msg.HTMLBody, "123456")
	assert.Contains(t, msg.HTMLBody, "expires in 10 minutes")
	assert.Contains(t, msg.HTMLBody, "verify your email address")
}

func TestConsumeOTPRequested_PasswordReset(t *testing.T) {
	repo := &fakeEmail{}
	uc := newTestUsecase(t, repo)

	err := uc.ConsumeOTPRequested(context.Background(), ConsumeOTPRequestedInput{
		AccountID:        7,
		Email:            "rider@example.com",
		Name:             "Juan Dela Cruz",
		Code:             "654321",
		ExpiresInSeconds: 600,
		Purpose:          event.PurposePasswordReset,
	})
	require.NoError(t, err)

	require.Len(t, repo.sent, 1)
	assert.Contains(t, repo.sent[0].HTMLBody, "resetting your password")
}

func TestConsumeOTPRequested_InvalidPayload(t *testing.T) {
	repo := &fakeEmail{}
	uc := newTestUsecase(t, repo)

	// A malformed event is dropped, never retried.
	err := uc.ConsumeOTPRequested(context.Background(), ConsumeOTPRequestedInput{
		Email: "not-an-email",
		Code:  "12",
	})
	require.NoError(t, err)
	assert.Empty(t, repo.sent)
}

func TestConsumeOTPRequested_DeliveryFailure(t *testing.T) {
	repo := &fakeEmail{err: assert.AnError}
	uc := newTestUsecase(t, repo)

	// Delivery failure is swallowed so the message is not redelivered
	// forever. The commuter can request a fresh code.
	err := uc.ConsumeOTPRequested(context.Background(), ConsumeOTPRequestedInput{
		AccountID:        7,
		Email:            "rider@example.com",
		Name:             "Juan Dela Cruz",
		Code:             "123456",
		ExpiresInSeconds: 600,
		Purpose:          event.PurposeVerification,
	})
	require.NoError(t, err)
	assert.Empty(t, repo.sent)
}
