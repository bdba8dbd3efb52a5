package ratelimit

import (
	"context"
	"time"
)

// Limiter is a keyed fixed-window attempt counter.
//
// Hit both records an attempt and reports the resulting count, so callers can
// decide in one round trip whether the attempt exceeded the cap. The window is
// armed when the first attempt lands and expires on its own.
type Limiter interface {
	// Hit records an attempt for key and returns the attempt count inside the
	// current window, including this one.
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)

	// TooManyAttempts reports whether key already has max or more attempts in
	// the current window, without recording a new one.
	TooManyAttempts(ctx context.Context, key string, max int64) (bool, error)

	// AvailableIn returns how long until the window for key expires. It
	// returns zero when there is no active window.
	AvailableIn(ctx context.Context, key string) (time.Duration, error)
}
