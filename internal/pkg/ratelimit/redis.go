package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// hitScript increments the attempt counter and arms the window TTL only when
// the key is created by this call. Running it as one script keeps concurrent
// hits from resetting the window or slipping past the cap.
var hitScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// Redis is a Limiter backed by a shared redis instance.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a redis-backed limiter. Keys are namespaced under
// "ratelimit:".
func NewRedis(client *redis.Client) *Redis {
	return &Redis{
		client: client,
		prefix: "ratelimit:",
	}
}

// Hit records an attempt and returns the count inside the current window.
func (r *Redis) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	return hitScript.Run(ctx, r.client, []string{r.prefix + key}, window.Milliseconds()).Int64()
}

// TooManyAttempts reports whether key already reached max attempts.
func (r *Redis) TooManyAttempts(ctx context.Context, key string, max int64) (bool, error) {
	count, err := r.client.Get(ctx, r.prefix+key).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return count >= max, nil
}

// AvailableIn returns the remaining lifetime of the window for key.
func (r *Redis) AvailableIn(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := r.client.PTTL(ctx, r.prefix+key).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}

	return ttl, nil
}
