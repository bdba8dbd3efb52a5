package email

import (
	"context"
	"time"

	"github.com/ligtascommute/backend/internal/pkg/instrument"
	"github.com/ligtascommute/backend/internal/pkg/mail"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"
)

const (
	deliveryBudget  = 10 * time.Second
	retryBase       = 500 * time.Millisecond
	retryMaxRetries = 2
)

type Mail struct {
	client mail.Mail
	ins    instrument.Instrumentation
}

func New(client mail.Mail, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, ins: ins}
}

// Send delivers the message with bounded retries. At most three attempts are
// made inside a fixed time budget so a slow SMTP server cannot stall the
// consumer.
func (m *Mail) Send(ctx context.Context, msg mail.Message) error {
	ctx, span := m.ins.Tracer("notification.outbound.email").Start(ctx, "Send")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, deliveryBudget)
	defer cancel()

	backoff := retry.WithMaxRetries(retryMaxRetries, retry.NewExponential(retryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := m.client.Send(ctx, msg); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
