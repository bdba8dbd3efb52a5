package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLimiter(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedis(client), srv
}

func TestRedis_Hit(t *testing.T) {
	limiter, srv := newRedisLimiter(t)
	ctx := context.Background()

	for want := int64(1); want <= 4; want++ {
		count, err := limiter.Hit(ctx, "send-otp:rider@example.com", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	// A different key counts independently.
	count, err := limiter.Hit(ctx, "send-otp:other@example.com", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// The window resets after it expires.
	srv.FastForward(61 * time.Second)

	count, err = limiter.Hit(ctx, "send-otp:rider@example.com", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedis_TooManyAttempts(t *testing.T) {
	limiter, _ := newRedisLimiter(t)
	ctx := context.Background()

	over, err := limiter.TooManyAttempts(ctx, "send-otp:rider@example.com", 3)
	require.NoError(t, err)
	assert.False(t, over)

	for range 3 {
		_, err = limiter.Hit(ctx, "send-otp:rider@example.com", time.Minute)
		require.NoError(t, err)
	}

	over, err = limiter.TooManyAttempts(ctx, "send-otp:rider@example.com", 3)
	require.NoError(t, err)
	assert.True(t, over)
}

func TestRedis_AvailableIn(t *testing.T) {
	limiter, srv := newRedisLimiter(t)
	ctx := context.Background()

	remain, err := limiter.AvailableIn(ctx, "send-otp:rider@example.com")
	require.NoError(t, err)
	assert.Zero(t, remain)

	_, err = limiter.Hit(ctx, "send-otp:rider@example.com", time.Minute)
	require.NoError(t, err)

	srv.FastForward(15 * time.Second)

	remain, err = limiter.AvailableIn(ctx, "send-otp:rider@example.com")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, remain)
}

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

func TestMemory(t *testing.T) {
	clk := &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	limiter := NewMemory(clk)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		count, err := limiter.Hit(ctx, "send-otp:rider@example.com", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	over, err := limiter.TooManyAttempts(ctx, "send-otp:rider@example.com", 3)
	require.NoError(t, err)
	assert.True(t, over)

	remain, err := limiter.AvailableIn(ctx, "send-otp:rider@example.com")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, remain)

	clk.now = clk.now.Add(time.Minute)

	over, err = limiter.TooManyAttempts(ctx, "send-otp:rider@example.com", 3)
	require.NoError(t, err)
	assert.False(t, over)

	count, err := limiter.Hit(ctx, "send-otp:rider@example.com", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
