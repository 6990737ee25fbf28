// Package ratelimit implements fixed-window admission control for the
// dispatch gateway. The window counters are the only state shared across
// concurrent calls; the backing store keeps the increment-and-read atomic
// per key.
package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CounterStore tracks per-key call counts within a fixed window. Incr returns
// the count including the current call. Implementations must make the
// increment atomic per key: two concurrent calls sharing a key must never
// observe the same count.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter decides whether a call is admitted under a fixed-window quota.
type Limiter struct {
	store  CounterStore
	window time.Duration
	max    int64
}

// NewLimiter creates a limiter admitting at most max calls per key within
// each window.
func NewLimiter(store CounterStore, window time.Duration, max int64) *Limiter {
	return &Limiter{
		store:  store,
		window: window,
		max:    max,
	}
}

// Allow reports whether the call identified by key is admitted. A denied
// call still counts toward the window; the rejection count is informative.
// If the backing store is unreachable the call is admitted (fail open) and
// the condition is logged: unmetered traffic is preferable to a store outage
// denying all calls.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	count, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		zap.L().Warn("Rate counter store unreachable, admitting call",
			zap.String("key", key),
			zap.Error(err))
		return true
	}
	return count <= l.max
}
