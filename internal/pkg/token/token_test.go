package token

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ligtascommute/backend/internal/pkg/hash"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type seqStringID struct{ n atomic.Int64 }

func (s *seqStringID) Generate() string {
	return "aaaabbbbccccddddeeeeffff000011112222333344445555666677778888999" +
		string(rune('0'+s.n.Add(1)%10))
}

type seqNumberID struct{ n atomic.Int64 }

func (s *seqNumberID) Generate() int64 { return s.n.Add(1) }

func newTestService(store Store) *Service {
	return NewService(
		store,
		hash.NewHMACSHA256("test-secret"),
		&seqStringID{},
		&seqNumberID{},
		&fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)},
	)
}

func TestService_IssueVerifyRevoke(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.SeedAccount(7, "rider@example.com", "commuter")
	svc := newTestService(store)

	plaintext, err := svc.Issue(ctx, 7, "auth_token")
	require.NoError(t, err)
	require.Len(t, plaintext, 64)

	auth, err := svc.Verify(ctx, plaintext)
	require.NoError(t, err)
	assert.Equal(t, int64(7), auth.AccountID)
	assert.Equal(t, "rider@example.com", auth.Email)
	assert.Equal(t, "commuter", auth.Role)

	require.NoError(t, svc.Revoke(ctx, plaintext))

	_, err = svc.Verify(ctx, plaintext)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Revoking again is fine.
	assert.NoError(t, svc.Revoke(ctx, plaintext))
}

func TestService_Verify_Unknown(t *testing.T) {
	svc := newTestService(NewMemoryStore())

	_, err := svc.Verify(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_TokensAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.SeedAccount(7, "rider@example.com", "commuter")
	svc := newTestService(store)

	first, err := svc.Issue(ctx, 7, "auth_token")
	require.NoError(t, err)
	second, err := svc.Issue(ctx, 7, "auth_token")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	require.NoError(t, svc.Revoke(ctx, first))

	// The surviving token still authenticates.
	auth, err := svc.Verify(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, int64(7), auth.AccountID)
}
