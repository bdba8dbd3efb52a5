package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ligtascommute/backend/internal/account/entity"
	"github.com/ligtascommute/backend/internal/pkg/goerror"
)

// Profile returns the authenticated account.
func (s *Usecase) Profile(ctx context.Context) (*entity.Account, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	auth, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	acc, err := s.repoDB.GetAccountByID(ctx, auth.AccountID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by id", "account_id", auth.AccountID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return acc, nil
}
