package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ligtascommute/backend/internal/account/entity"
	"github.com/ligtascommute/backend/internal/pkg/goerror"
	"github.com/ligtascommute/backend/internal/shared/event"
)

type RegisterInput struct {
	Name     string `validate:"required,max=255"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,password"`
	Phone    string `validate:"required,phone"`
}

type RegisterOutput struct {
	Email string
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Name = strings.TrimSpace(in.Name)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	_, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if err == nil {
		return nil, goerror.NewInvalidInput(nil, "email", "The email has already been taken.")
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	hashedPassword, err := s.passwords.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	acc := entity.Account{
		ID:           s.uid.Generate(),
		Email:        in.Email,
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         entity.RoleCommuter,
		PasswordHash: string(hashedPassword),
		Language:     entity.DefaultLanguage,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repoDB.CreateAccount(ctx, acc); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewInvalidInput(nil, "email", "The email has already been taken.")
		}
		slog.ErrorContext(ctx, "failed to repo create account", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	// Registration always triggers the first OTP send. Issuance failure,
	// including the throttle, does not fail registration.
	if _, err := s.issueOTP(ctx, &acc, event.PurposeVerification); err != nil {
		slog.WarnContext(ctx, "otp issuance after registration failed", "email", in.Email, "error", err)
	}

	return &RegisterOutput{Email: acc.Email}, nil
}
