package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	t.Run("first claim wins", func(t *testing.T) {
		isNew, err := store.MarkProcessed(ctx, "order-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)

		isNew, err = store.MarkProcessed(ctx, "order-1", time.Hour)
		require.NoError(t, err)
		assert.False(t, isNew)
	})

	t.Run("expired claim can be taken again", func(t *testing.T) {
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return now }
		defer func() { store.now = time.Now }()

		isNew, err := store.MarkProcessed(ctx, "order-2", time.Minute)
		require.NoError(t, err)
		assert.True(t, isNew)

		now = now.Add(2 * time.Minute)
		processed, err := store.IsProcessed(ctx, "order-2")
		require.NoError(t, err)
		assert.False(t, processed)

		isNew, err = store.MarkProcessed(ctx, "order-2", time.Minute)
		require.NoError(t, err)
		assert.True(t, isNew)
	})
}

func TestInMemoryIdempotencyStore_Release(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "purchase-1", time.Hour)
	require.NoError(t, err)

	processed, err := store.IsProcessed(ctx, "purchase-1")
	require.NoError(t, err)
	assert.True(t, processed)

	require.NoError(t, store.Release(ctx, "purchase-1"))
	processed, err = store.IsProcessed(ctx, "purchase-1")
	require.NoError(t, err)
	assert.False(t, processed)

	require.NoError(t, store.Release(ctx, "never-claimed"))
}

func TestInMemoryIdempotencyStore_ConcurrentClaims(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.MarkProcessed(context.Background(), "same-key", time.Hour)
			if err == nil && ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}

func TestInMemoryIdempotencyStore_Sweep(t *testing.T) {
	store := newInMemoryIdempotencyStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	_, _ = store.MarkProcessed(ctx, "short", time.Second)
	_, _ = store.MarkProcessed(ctx, "long", time.Hour)
	require.Equal(t, 2, store.Size())

	now = now.Add(time.Minute)
	store.sweep()
	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
