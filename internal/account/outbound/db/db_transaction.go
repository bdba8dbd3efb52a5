package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

// VerifyAccountEmail flips the verified flag and consumes the pending OTP in
// one transaction. A crash can never leave the account verified with a live
// code, or the code consumed without the flag set.
func (s *DB) VerifyAccountEmail(ctx context.Context, accountID int64, email string, verifiedAt time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "VerifyAccountEmail")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	if _, err := tx.Exec(ctx, `
		UPDATE accounts SET is_verified = TRUE, email_verified_at = $2, updated_at = $2
		WHERE id = $1`,
		accountID, verifiedAt,
	); err != nil {
		return s.mapError(err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM otps WHERE email = $1`, email); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
