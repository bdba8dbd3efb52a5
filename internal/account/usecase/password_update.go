package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ligtascommute/backend/internal/pkg/goerror"
)

type PasswordUpdateInput struct {
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"required,password"`
}

// PasswordUpdate rehashes and stores a new password once the current one has
// been verified.
func (s *Usecase) PasswordUpdate(ctx context.Context, in PasswordUpdateInput) error {
	ctx, span := s.startSpan(ctx, "PasswordUpdate")
	defer span.End()

	auth, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByID(ctx, auth.AccountID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by id", "account_id", auth.AccountID, "error", err)
		return goerror.NewServer(err)
	}

	if !s.passwords.Verify(acc.PasswordHash, in.CurrentPassword) {
		return goerror.NewInvalidInput(nil, "current_password", "The current password is incorrect.")
	}

	newHash, err := s.passwords.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdatePassword(ctx, acc.ID, string(newHash)); err != nil {
		slog.ErrorContext(ctx, "failed to repo update password", "account_id", acc.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
