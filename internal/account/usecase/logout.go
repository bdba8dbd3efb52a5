package usecase

import (
	"context"
	"log/slog"

	"github.com/ligtascommute/backend/internal/pkg/goerror"
	"github.com/ligtascommute/backend/internal/pkg/token"
)

// Logout revokes the bearer token presented on this request. Revoking a token
// that no longer exists still succeeds.
func (s *Usecase) Logout(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	auth, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.tokens.Revoke(ctx, token.GetBearer(ctx)); err != nil {
		slog.ErrorContext(ctx, "failed to revoke token", "account_id", auth.AccountID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
