package db

import (
	"context"

	"github.com/ligtascommute/backend/internal/account/entity"
)

func (s *DB) CreateAccount(ctx context.Context, acc entity.Account) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO accounts
			(id, email, username, name, phone, location, role, password_hash,
			 is_verified, email_verified_at, points, language, dark_mode, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		acc.ID,
		acc.Email,
		acc.Username,
		acc.Name,
		acc.Phone,
		acc.Location,
		acc.Role,
		acc.PasswordHash,
		acc.IsVerified,
		acc.EmailVerifiedAt,
		acc.Points,
		acc.Language,
		acc.DarkMode,
		acc.CreatedAt,
		acc.UpdatedAt,
	)

	return s.mapError(err)
}

// UpsertOTP replaces any pending code for the email in a single statement, so
// two concurrent issuances cannot leave two live codes.
func (s *DB) UpsertOTP(ctx context.Context, code entity.OTPCode) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertOTP")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO otps (email, code, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at`,
		code.Email, code.Code, code.ExpiresAt,
	)

	return s.mapError(err)
}
