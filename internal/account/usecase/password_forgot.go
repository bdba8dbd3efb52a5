package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ligtascommute/backend/internal/pkg/goerror"
	"github.com/ligtascommute/backend/internal/shared/event"
)

type PasswordForgotInput struct {
	Email string `validate:"required,email"`
}

// PasswordForgot triggers OTP issuance for the email. The outcome of issuance
// is never surfaced, so the response does not reveal whether the email is
// registered.
func (s *Usecase) PasswordForgot(ctx context.Context, in PasswordForgotInput) error {
	ctx, span := s.startSpan(ctx, "PasswordForgot")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil
	}

	if _, err := s.issueOTP(ctx, acc, event.PurposePasswordReset); err != nil {
		slog.WarnContext(ctx, "otp issuance for password reset failed", "email", in.Email, "error", err)
	}

	return nil
}
