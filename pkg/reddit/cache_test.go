package reddit

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)
	ctx := context.Background()

	entry := &CacheEntry{
		Data:      []byte("scopes"),
		ExpiresAt: time.Now().Add(time.Hour),
		ETag:      "etag",
	}

	require.NoError(t, cache.Set(ctx, "key", entry))

	got, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, got.Data)
	assert.Equal(t, "etag", got.ETag)
	assert.True(t, cache.Has(ctx, "key"))
}

func TestMemoryCache_GetNonExistent(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)

	_, err := cache.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryCache_GetExpired(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", &CacheEntry{
		Data:      []byte("old"),
		ExpiresAt: time.Now().Add(-time.Second),
	}))

	_, err := cache.Get(ctx, "key")
	require.ErrorIs(t, err, ErrEntryExpired)
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCache_ExpiredReadKeepsReplacement(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)
	ctx := context.Background()

	for range 200 {
		require.NoError(t, cache.Set(ctx, "key", &CacheEntry{
			Data:      []byte("old"),
			ExpiresAt: time.Now().Add(-time.Second),
		}))

		fresh := &CacheEntry{Data: []byte("new"), ExpiresAt: time.Now().Add(time.Hour)}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = cache.Get(ctx, "key")
		}()
		go func() {
			defer wg.Done()
			_ = cache.Set(ctx, "key", fresh)
		}()
		wg.Wait()

		got, err := cache.Get(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), got.Data)
	}
}

func TestMemoryCache_NoExpiry(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", &CacheEntry{Data: []byte("forever")}))
	assert.True(t, cache.Has(ctx, "key"))
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)
	ctx := context.Background()

	for i := range 3 {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("key%d", i), &CacheEntry{Data: []byte("x")}))
	}

	require.NoError(t, cache.Delete(ctx, "key0"))
	assert.False(t, cache.Has(ctx, "key0"))
	assert.Equal(t, 2, cache.Len())

	require.NoError(t, cache.Clear(ctx))
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCache_MaxSize(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(2)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, cache.Set(ctx, "soon", &CacheEntry{ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, cache.Set(ctx, "later", &CacheEntry{ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, cache.Set(ctx, "latest", &CacheEntry{ExpiresAt: now.Add(2 * time.Hour)}))

	assert.Equal(t, 2, cache.Len())
	assert.False(t, cache.Has(ctx, "soon"))
	assert.True(t, cache.Has(ctx, "later"))
	assert.True(t, cache.Has(ctx, "latest"))

	// Overwriting an existing key never evicts.
	require.NoError(t, cache.Set(ctx, "later", &CacheEntry{ExpiresAt: now.Add(3 * time.Hour)}))
	assert.Equal(t, 2, cache.Len())
}

func TestCacheEntry_Expired(t *testing.T) {
	t.Parallel()

	now := time.Now()

	assert.False(t, (&CacheEntry{}).Expired(now))
	assert.False(t, (&CacheEntry{ExpiresAt: now.Add(time.Second)}).Expired(now))
	assert.True(t, (&CacheEntry{ExpiresAt: now}).Expired(now))
}
