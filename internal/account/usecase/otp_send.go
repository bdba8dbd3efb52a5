package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ligtascommute/backend/internal/pkg/goerror"
	"github.com/ligtascommute/backend/internal/shared/event"
)

type OTPSendInput struct {
	Email string `validate:"required,email"`
}

type OTPSendOutput struct {
	Email     string
	ExpiresIn int
}

func (s *Usecase) OTPSend(ctx context.Context, in OTPSendInput) (*OTPSendOutput, error) {
	ctx, span := s.startSpan(ctx, "OTPSend")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	expiresIn, err := s.issueOTP(ctx, acc, event.PurposeVerification)
	if err != nil {
		return nil, err
	}

	return &OTPSendOutput{Email: acc.Email, ExpiresIn: expiresIn}, nil
}
