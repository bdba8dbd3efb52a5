package db

import (
	"context"

	"github.com/ligtascommute/backend/internal/account/entity"
)

func (s *DB) UpdateProfile(ctx context.Context, id int64, changes entity.ProfileChanges) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateProfile")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		UPDATE accounts SET
			name       = COALESCE($2, name),
			phone      = COALESCE($3, phone),
			location   = COALESCE($4, location),
			language   = COALESCE($5, language),
			dark_mode  = COALESCE($6, dark_mode),
			updated_at = now()
		WHERE id = $1`,
		id, changes.Name, changes.Phone, changes.Location, changes.Language, changes.DarkMode,
	)

	return s.mapError(err)
}

func (s *DB) UpdateUsername(ctx context.Context, id int64, username string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUsername")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`UPDATE accounts SET username = $2, updated_at = now() WHERE id = $1`,
		id, username,
	)

	return s.mapError(err)
}

func (s *DB) UpdatePassword(ctx context.Context, id int64, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePassword")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`UPDATE accounts SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash,
	)

	return s.mapError(err)
}
