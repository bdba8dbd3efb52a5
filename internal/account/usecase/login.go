package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ligtascommute/backend/internal/account/entity"
	"github.com/ligtascommute/backend/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	RequiresVerification bool
	Token                string
	Account              *entity.Account
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	// A missing account and a wrong password answer identically so callers
	// cannot enumerate registered emails.
	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login for unknown account", "email", in.Email)
		return nil, goerror.NewBusiness("Invalid credentials", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.passwords.Verify(acc.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "login password mismatch", "account_id", acc.ID)
		return nil, goerror.NewBusiness("Invalid credentials", goerror.CodeUnauthorized)
	}

	if !acc.IsVerified {
		return &LoginOutput{RequiresVerification: true}, nil
	}

	tok, err := s.tokens.Issue(ctx, acc.ID, "auth_token")
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue token", "account_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{Token: tok, Account: acc}, nil
}
