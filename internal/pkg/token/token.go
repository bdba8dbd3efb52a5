package token

import (
	"context"
	"errors"
	"time"

	"github.com/ligtascommute/backend/internal/pkg/clock"
	"github.com/ligtascommute/backend/internal/pkg/hash"
	"github.com/ligtascommute/backend/internal/pkg/uid"
)

// ErrInvalidToken is returned when a presented token does not resolve to an account.
var ErrInvalidToken = errors.New("invalid token")

// Auth identifies the account behind a verified token.
type Auth struct {
	// TokenID is the row id of the presented token.
	TokenID int64
	// AccountID is the authenticated account identifier.
	AccountID int64
	// Email is the authenticated account email.
	Email string
	// Role is the account role used for authorization decisions.
	Role string
}

// Record is a persisted token. Only the HMAC digest of the plaintext is
// stored; the plaintext itself exists exactly once, in the issue response.
type Record struct {
	ID        int64
	AccountID int64
	Digest    string
	Name      string
	CreatedAt time.Time
}

// Store persists token records.
type Store interface {
	// Save inserts a new token record.
	Save(ctx context.Context, rec Record) error
	// FindByDigest resolves a digest to the owning account. Implementations
	// return goerror.ErrNotFound when no token matches.
	FindByDigest(ctx context.Context, digest string) (Auth, error)
	// DeleteByDigest removes the token with the given digest. Deleting a
	// digest that does not exist is not an error.
	DeleteByDigest(ctx context.Context, digest string) error
}

// Verifier resolves presented bearer tokens. The HTTP auth middleware depends
// on this narrow view of Service.
type Verifier interface {
	Verify(ctx context.Context, plaintext string) (Auth, error)
}

// Service issues, verifies and revokes opaque bearer tokens.
//
// A token is a random 64-hex string handed to the client once. The database
// keeps only its keyed digest, so a leaked table cannot be replayed, and
// revocation is a plain row delete.
type Service struct {
	store Store
	hmac  hash.Hash
	gen   uid.StringID
	id    uid.NumberID
	clock clock.Clocker
}

// NewService wires a token service.
func NewService(store Store, hmac hash.Hash, gen uid.StringID, id uid.NumberID, clk clock.Clocker) *Service {
	return &Service{store: store, hmac: hmac, gen: gen, id: id, clock: clk}
}

// Issue creates a token for the account and returns its plaintext.
func (s *Service) Issue(ctx context.Context, accountID int64, name string) (string, error) {
	plaintext := s.gen.Generate()

	digest, err := s.hmac.Hash(plaintext)
	if err != nil {
		return "", err
	}

	rec := Record{
		ID:        s.id.Generate(),
		AccountID: accountID,
		Digest:    string(digest),
		Name:      name,
		CreatedAt: s.clock.Now(),
	}

	if err := s.store.Save(ctx, rec); err != nil {
		return "", err
	}

	return plaintext, nil
}

// Verify resolves a presented plaintext to the owning account.
func (s *Service) Verify(ctx context.Context, plaintext string) (Auth, error) {
	if plaintext == "" {
		return Auth{}, ErrInvalidToken
	}

	digest, err := s.hmac.Hash(plaintext)
	if err != nil {
		return Auth{}, err
	}

	auth, err := s.store.FindByDigest(ctx, string(digest))
	if err != nil {
		return Auth{}, ErrInvalidToken
	}

	return auth, nil
}

// Revoke deletes the token behind the presented plaintext. Revoking a token
// that was already revoked (or never existed) succeeds.
func (s *Service) Revoke(ctx context.Context, plaintext string) error {
	if plaintext == "" {
		return nil
	}

	digest, err := s.hmac.Hash(plaintext)
	if err != nil {
		return err
	}

	return s.store.DeleteByDigest(ctx, string(digest))
}
