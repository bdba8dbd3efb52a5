package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/ligtascommute/backend/internal/pkg/clock"
)

type memoryWindow struct {
	count   int64
	resetAt time.Time
}

// Memory is an in-process Limiter for single-node deployments and tests.
type Memory struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
	clock   clock.Clocker
}

// NewMemory creates an in-process limiter driven by the given clock.
func NewMemory(clk clock.Clocker) *Memory {
	return &Memory{
		windows: make(map[string]*memoryWindow),
		clock:   clk,
	}
}

// Hit records an attempt and returns the count inside the current window.
func (m *Memory) Hit(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()

	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &memoryWindow{resetAt: now.Add(window)}
		m.windows[key] = w
	}

	w.count++

	return w.count, nil
}

// TooManyAttempts reports whether key already reached max attempts.
func (m *Memory) TooManyAttempts(_ context.Context, key string, max int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if !ok || !m.clock.Now().Before(w.resetAt) {
		return false, nil
	}

	return w.count >= max, nil
}

// AvailableIn returns the remaining lifetime of the window for key.
func (m *Memory) AvailableIn(_ context.Context, key string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if !ok {
		return 0, nil
	}

	remain := w.resetAt.Sub(m.clock.Now())
	if remain < 0 {
		return 0, nil
	}

	return remain, nil
}
