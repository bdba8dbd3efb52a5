package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ligtascommute/backend/internal/notification/usecase"
	"github.com/ligtascommute/backend/internal/pkg/instrument"
	"github.com/ligtascommute/backend/internal/pkg/messaging"
	"github.com/ligtascommute/backend/internal/pkg/uid"
	"github.com/ligtascommute/backend/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) OTPRequestedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "OTPRequestedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: otp requested notification", "msg_body", string(body))

	var payload event.OTPRequested
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of otp requested notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeOTPRequested(ctx, usecase.ConsumeOTPRequestedInput{
		AccountID:        payload.AccountID,
		Email:            payload.Email,
		Name:             payload.Name,
		Code:             payload.Code,
		ExpiresInSeconds: payload.ExpiresInSeconds,
		Purpose:          payload.Purpose,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume otp requested", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
