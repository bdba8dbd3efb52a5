package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ligtascommute/backend/internal/account/entity"
	"github.com/ligtascommute/backend/internal/pkg/goerror"
	"github.com/ligtascommute/backend/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const accountColumns = `id, email, username, name, phone, location, role, password_hash,
	is_verified, email_verified_at, points, language, dark_mode, created_at, updated_at`

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return goerror.ErrConflict
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var acc entity.Account
	err := row.Scan(
		&acc.ID,
		&acc.Email,
		&acc.Username,
		&acc.Name,
		&acc.Phone,
		&acc.Location,
		&acc.Role,
		&acc.PasswordHash,
		&acc.IsVerified,
		&acc.EmailVerifiedAt,
		&acc.Points,
		&acc.Language,
		&acc.DarkMode,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &acc, nil
}
