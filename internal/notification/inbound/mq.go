package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ligtascommute/backend/internal/pkg/config"
	"github.com/ligtascommute/backend/internal/pkg/goroutine"
	"github.com/ligtascommute/backend/internal/pkg/instrument"
	"github.com/ligtascommute/backend/internal/pkg/messaging"
	"github.com/ligtascommute/backend/internal/pkg/uid"
	"github.com/ligtascommute/backend/internal/shared/event"
)

const otpRequestedConsumerName = "notification-otp-requested"

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enabledConsumerNames := cfg.GetArray("modules.notification.consumer_names")

	consumers := []struct {
		name    string
		topic   string
		handler messaging.Handler
	}{
		{
			name:    otpRequestedConsumerName,
			topic:   event.TopicOTPRequested,
			handler: mqHandler.OTPRequestedNotification,
		},
	}

	for _, consumer := range consumers {
		if len(enabledConsumerNames) > 0 && slices.Contains(enabledConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithChannel(consumer.name),
					messaging.WithQueueGroup(consumer.name),
					messaging.WithGroup(consumer.name),
					messaging.WithSubscription(consumer.name),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(10),
				)
			})
		}
	}
}
