package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore simulates an unreachable shared counter store
type failingStore struct{}

func (failingStore) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("store unreachable")
}

// TestMemoryStore_CountsWithinWindow tests that counts accumulate within one window
func TestMemoryStore_CountsWithinWindow(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := NewMemoryStoreWithClock(clock)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		count, err := store.Incr(ctx, "tool:create_scene", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}
}

// TestMemoryStore_WindowReset tests that an elapsed window starts fresh
func TestMemoryStore_WindowReset(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := NewMemoryStoreWithClock(clock)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Incr(ctx, "tool:get_scene", time.Minute)
		require.NoError(t, err)
	}

	clock.Advance(time.Minute)

	count, err := store.Incr(ctx, "tool:get_scene", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "elapsed window should reset the counter")
}

// TestMemoryStore_KeysAreIndependent tests that each key has its own window
func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := NewMemoryStoreWithClock(clock)
	ctx := context.Background()

	_, err := store.Incr(ctx, "tool:create_scene", time.Minute)
	require.NoError(t, err)
	_, err = store.Incr(ctx, "tool:create_scene", time.Minute)
	require.NoError(t, err)

	count, err := store.Incr(ctx, "tool:delete_scene", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// TestLimiter_DeniesOverQuota tests that the (N+1)-th call within a window is denied
func TestLimiter_DeniesOverQuota(t *testing.T) {
	clock := clockwork.NewFakeClock()
	limiter := NewLimiter(NewMemoryStoreWithClock(clock), time.Minute, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow(ctx, "tool:export_scene"))
	}
	assert.False(t, limiter.Allow(ctx, "tool:export_scene"))

	// A denied call does not affect other keys.
	assert.True(t, limiter.Allow(ctx, "tool:list_scenes"))
}

// TestLimiter_WindowElapsed tests that denial ends when the window does
func TestLimiter_WindowElapsed(t *testing.T) {
	clock := clockwork.NewFakeClock()
	limiter := NewLimiter(NewMemoryStoreWithClock(clock), time.Minute, 2)
	ctx := context.Background()

	assert.True(t, limiter.Allow(ctx, "tool:get_scene"))
	assert.True(t, limiter.Allow(ctx, "tool:get_scene"))
	assert.False(t, limiter.Allow(ctx, "tool:get_scene"))

	clock.Advance(time.Minute)

	assert.True(t, limiter.Allow(ctx, "tool:get_scene"))
}

// TestLimiter_FailOpen tests that an unreachable store admits the call
func TestLimiter_FailOpen(t *testing.T) {
	limiter := NewLimiter(failingStore{}, time.Minute, 1)

	assert.True(t, limiter.Allow(context.Background(), "tool:get_scene"))
	assert.True(t, limiter.Allow(context.Background(), "tool:get_scene"))
}

// TestLimiter_ConcurrentExactAdmission tests that concurrent calls sharing a
// key admit exactly max of them, with no lost updates
func TestLimiter_ConcurrentExactAdmission(t *testing.T) {
	const (
		callers = 50
		max     = 10
	)

	clock := clockwork.NewFakeClock()
	limiter := NewLimiter(NewMemoryStoreWithClock(clock), time.Minute, max)
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
	)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow(ctx, "tool:create_object") {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, max, admitted)
}
