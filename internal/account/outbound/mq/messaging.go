package mq

import (
	"context"
	"encoding/json"

	"github.com/ligtascommute/backend/internal/pkg/instrument"
	"github.com/ligtascommute/backend/internal/pkg/messaging"
	"github.com/ligtascommute/backend/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishOTPRequested(ctx context.Context, msg event.OTPRequested) error {
	ctx, span := m.ins.Tracer("account.outbound.mq").Start(ctx, "PublishOTPRequested")
	defer span.End()

	body, err := json.Marshal(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if err := m.client.Publish(ctx, event.TopicOTPRequested, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
