package token

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ligtascommute/backend/internal/pkg/goerror"
)

const (
	sqlSaveToken = `
		INSERT INTO account_tokens (id, account_id, digest, name, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	sqlFindTokenByDigest = `
		SELECT t.id, a.id, a.email, a.role
		FROM account_tokens t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.digest = $1`

	sqlDeleteTokenByDigest = `DELETE FROM account_tokens WHERE digest = $1`
)

// Commander defines the pgx operations required by the store.
type Commander interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore persists tokens in the account_tokens table.
type PGStore struct {
	db Commander
}

// NewPGStore creates a postgres-backed token store.
func NewPGStore(db Commander) *PGStore {
	return &PGStore{db: db}
}

// Save inserts a new token record.
func (s *PGStore) Save(ctx context.Context, rec Record) error {
	_, err := s.db.Exec(ctx, sqlSaveToken, rec.ID, rec.AccountID, rec.Digest, rec.Name, rec.CreatedAt)
	return err
}

// FindByDigest resolves a digest to the owning account.
func (s *PGStore) FindByDigest(ctx context.Context, digest string) (Auth, error) {
	var auth Auth
	err := s.db.QueryRow(ctx, sqlFindTokenByDigest, digest).
		Scan(&auth.TokenID, &auth.AccountID, &auth.Email, &auth.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return Auth{}, goerror.ErrNotFound
	}
	if err != nil {
		return Auth{}, err
	}

	return auth, nil
}

// DeleteByDigest removes the token row, succeeding even when none exists.
func (s *PGStore) DeleteByDigest(ctx context.Context, digest string) error {
	_, err := s.db.Exec(ctx, sqlDeleteTokenByDigest, digest)
	return err
}
