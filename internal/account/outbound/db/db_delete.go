package db

import "context"

func (s *DB) DeleteOTPByEmail(ctx context.Context, email string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteOTPByEmail")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `DELETE FROM otps WHERE email = $1`, email)

	return s.mapError(err)
}
