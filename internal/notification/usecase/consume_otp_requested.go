package usecase

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"

	"github.com/ligtascommute/backend/internal/pkg/mail"
	"github.com/ligtascommute/backend/internal/shared/event"
)

const otpEmailSubject = "Your One-Time Password"

var otpEmailTemplate = template.Must(template.New("otp_email").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, Helvetica, sans-serif; color: #1f2933; }
    .container { max-width: 480px; margin: 0 auto; padding: 24px; }
    .code { font-size: 32px; letter-spacing: 8px; font-weight: bold; text-align: center;
            padding: 16px; background: #f1f5f9; border-radius: 8px; }
    .muted { color: #64748b; font-size: 13px; }
  </style>
</head>
<body>
  <div class="container">
    <p>Hi {{.Name}},</p>
    {{if .IsPasswordReset}}
    <p>Use this One-Time Password to continue resetting your password:</p>
    {{else}}
    <p>Use this One-Time Password to verify your email address:</p>
    {{end}}
    <div class="code">{{.Code}}</div>
    <p>This code expires in {{.ExpiresInMinutes}} minutes. If you did not request it, you can safely ignore this email.</p>
    <p class="muted">LigtasCommute &middot; commute safe, commute smart</p>
  </div>
</body>
</html>
`))

type ConsumeOTPRequestedInput struct {
	AccountID        int64  `validate:"required,gt=0"`
	Email            string `validate:"required,email"`
	Name             string `validate:"required"`
	Code             string `validate:"required,len=6,number"`
	ExpiresInSeconds int    `validate:"required,gt=0"`
	Purpose          string `validate:"required"`
}

// ConsumeOTPRequested renders and delivers the OTP email. Delivery is
// best-effort: a terminal failure is logged and the message is still treated
// as handled, because the code is already durably stored by the account
// module.
func (s *Usecase) ConsumeOTPRequested(ctx context.Context, in ConsumeOTPRequestedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOTPRequested")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid otp requested payload", "error", err)
		return nil
	}

	var body bytes.Buffer
	if err := otpEmailTemplate.Execute(&body, map[string]any{
		"Name":             in.Name,
		"Code":             in.Code,
		"ExpiresInMinutes": in.ExpiresInSeconds / 60,
		"IsPasswordReset":  in.Purpose == event.PurposePasswordReset,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to render otp email", "account_id", in.AccountID, "error", err)
		return nil
	}

	if err := s.repoEmail.Send(ctx, mail.Message{
		From:     s.cfg.GetString("modules.notification.email_from"),
		To:       []string{in.Email},
		Subject:  otpEmailSubject,
		HTMLBody: body.String(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to deliver otp email", "account_id", in.AccountID, "error", err)
	}

	return nil
}
