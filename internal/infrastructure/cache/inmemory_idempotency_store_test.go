package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/campmanager/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeClock drives store expiry without sleeping
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newStoreWithClock(t *testing.T) (*InMemoryIdempotencyStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewInMemoryIdempotencyStore(time.Hour)
	store.now = clock.now
	t.Cleanup(func() { _ = store.Close() })
	return store, clock
}

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	ctx := context.Background()

	t.Run("first mark wins", func(t *testing.T) {
		store, _ := newStoreWithClock(t)

		ok, err := store.MarkProcessed(ctx, "customer.attach_account:c1:USD", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.MarkProcessed(ctx, "customer.attach_account:c1:USD", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired key can be marked again", func(t *testing.T) {
		store, clock := newStoreWithClock(t)

		_, _ = store.MarkProcessed(ctx, "k", time.Minute)
		clock.advance(time.Minute)

		ok, err := store.MarkProcessed(ctx, "k", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("released key can be marked again", func(t *testing.T) {
		store, _ := newStoreWithClock(t)

		_, _ = store.MarkProcessed(ctx, "k", time.Hour)
		require.NoError(t, store.Release(ctx, "k"))

		processed, err := store.IsProcessed(ctx, "k")
		require.NoError(t, err)
		assert.False(t, processed)

		ok, _ := store.MarkProcessed(ctx, "k", time.Hour)
		assert.True(t, ok)
	})

	t.Run("concurrent marks admit exactly one", func(t *testing.T) {
		store, _ := newStoreWithClock(t)

		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if ok, _ := store.MarkProcessed(ctx, "race", time.Hour); ok {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})
}

func TestInMemoryIdempotencyStore_Sweep(t *testing.T) {
	ctx := context.Background()
	store, clock := newStoreWithClock(t)

	_, _ = store.MarkProcessed(ctx, "short", time.Second)
	_, _ = store.MarkProcessed(ctx, "long", time.Hour)
	clock.advance(time.Minute)
	store.sweep()

	assert.Equal(t, 1, store.Size())
	processed, _ := store.IsProcessed(ctx, "long")
	assert.True(t, processed)
}

func TestInMemoryIdempotencyStore_CloseIsIdempotent(t *testing.T) {
	store := NewInMemoryIdempotencyStore(0)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestNewIdempotencyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory store by default", func(t *testing.T) {
		cfg := &config.Config{Queue: config.QueueConfig{DedupeStore: "memory", DedupeTTL: time.Minute}}
		store, err := NewIdempotencyStore(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("unreachable redis falls back outside production", func(t *testing.T) {
		cfg := &config.Config{
			App:   config.AppConfig{Env: "development"},
			Redis: config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1},
			Queue: config.QueueConfig{DedupeStore: "redis", DedupeTTL: time.Minute},
		}
		store, err := NewIdempotencyStore(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("unreachable redis fails in production", func(t *testing.T) {
		cfg := &config.Config{
			App:   config.AppConfig{Env: "production"},
			Redis: config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1},
			Queue: config.QueueConfig{DedupeStore: "redis"},
		}
		_, err := NewIdempotencyStore(ctx, cfg, zap.NewNop())
		assert.Error(t, err)
	})
}
