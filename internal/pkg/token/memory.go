package token

import (
	"context"
	"sync"

	"github.com/ligtascommute/backend/internal/pkg/goerror"
)

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu       sync.Mutex
	records  map[string]Record
	accounts map[int64]Auth
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:  make(map[string]Record),
		accounts: make(map[int64]Auth),
	}
}

// SeedAccount registers the identity returned for tokens of the account.
func (s *MemoryStore) SeedAccount(accountID int64, email, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[accountID] = Auth{AccountID: accountID, Email: email, Role: role}
}

// Save inserts a new token record.
func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.Digest] = rec

	return nil
}

// FindByDigest resolves a digest to the owning account.
func (s *MemoryStore) FindByDigest(_ context.Context, digest string) (Auth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[digest]
	if !ok {
		return Auth{}, goerror.ErrNotFound
	}

	auth, ok := s.accounts[rec.AccountID]
	if !ok {
		return Auth{}, goerror.ErrNotFound
	}

	auth.TokenID = rec.ID

	return auth, nil
}

// DeleteByDigest removes the token, succeeding even when none exists.
func (s *MemoryStore) DeleteByDigest(_ context.Context, digest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, digest)

	return nil
}
