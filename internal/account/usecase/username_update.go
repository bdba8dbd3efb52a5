package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ligtascommute/backend/internal/account/entity"
	"github.com/ligtascommute/backend/internal/pkg/goerror"
)

type UsernameUpdateInput struct {
	Username        string `validate:"required,username"`
	CurrentUsername string
}

// UsernameUpdate sets or changes the account username. When a username is
// already set, the caller has to present the current one before it changes.
func (s *Usecase) UsernameUpdate(ctx context.Context, in UsernameUpdateInput) (*entity.Account, error) {
	ctx, span := s.startSpan(ctx, "UsernameUpdate")
	defer span.End()

	auth, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByID(ctx, auth.AccountID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by id", "account_id", auth.AccountID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if acc.Username != nil && *acc.Username != in.CurrentUsername {
		return nil, goerror.NewInvalidInput(nil, "current_username", "The current username does not match.")
	}

	if err := s.repoDB.UpdateUsername(ctx, acc.ID, in.Username); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewInvalidInput(nil, "username", "The username has already been taken.")
		}
		slog.ErrorContext(ctx, "failed to repo update username", "account_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	acc, err = s.repoDB.GetAccountByID(ctx, acc.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo reload account", "account_id", auth.AccountID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return acc, nil
}
