package db

import (
	"context"

	"github.com/ligtascommute/backend/internal/account/entity"
)

func (s *DB) GetAccountByEmail(ctx context.Context, email string) (acc *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	acc, err = scanAccount(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return acc, nil
}

func (s *DB) GetAccountByID(ctx context.Context, id int64) (acc *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	acc, err = scanAccount(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return acc, nil
}

func (s *DB) GetOTPByEmail(ctx context.Context, email string) (code *entity.OTPCode, err error) {
	ctx, span := s.startSpan(ctx, "GetOTPByEmail")
	defer func() { s.endSpan(span, err) }()

	var rec entity.OTPCode
	err = s.conn.QueryRow(ctx,
		`SELECT email, code, expires_at FROM otps WHERE email = $1`, email,
	).Scan(&rec.Email, &rec.Code, &rec.ExpiresAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &rec, nil
}
