package ratelimit

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/puzpuzpuz/xsync/v3"
)

// windowCounter is one key's state: the running count and the instant the
// current window opened.
type windowCounter struct {
	count int64
	start time.Time
}

// MemoryStore is an in-process CounterStore, valid for single-instance
// deployments. Entries are created lazily on first observation of a key and
// reset when their window elapses.
type MemoryStore struct {
	clock    clockwork.Clock
	counters *xsync.MapOf[string, windowCounter]
}

// NewMemoryStore creates a memory store with a real clock.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(clockwork.NewRealClock())
}

// NewMemoryStoreWithClock creates a memory store with a custom clock.
// This is useful for testing window expiry with a fake clock.
func NewMemoryStoreWithClock(clock clockwork.Clock) *MemoryStore {
	return &MemoryStore{
		clock:    clock,
		counters: xsync.NewMapOf[string, windowCounter](),
	}
}

// Incr increments key's counter and returns the new count. The whole
// read-modify-write runs inside Compute, so it is atomic per key.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	now := s.clock.Now()
	var count int64

	s.counters.Compute(key, func(old windowCounter, loaded bool) (windowCounter, bool) {
		if !loaded || now.Sub(old.start) >= window {
			// First observation, or the window elapsed: start fresh.
			count = 1
			return windowCounter{count: 1, start: now}, false
		}
		count = old.count + 1
		return windowCounter{count: count, start: old.start}, false
	})

	return count, nil
}

// Interface guard for MemoryStore
var _ CounterStore = &MemoryStore{}
