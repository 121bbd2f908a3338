package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	cache := NewInMemoryCacheManager[string]("head", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "head", "<link>", DefaultExpiration)

	got, ok := cache.Get(context.Background(), "head")
	require.True(t, ok)
	require.Equal(t, "<link>", got)
	require.Equal(t, 1, cache.ItemCount())
}

func TestInMemoryCacheManager_Miss(t *testing.T) {
	cache := NewInMemoryCacheManager[string]("head", DefaultExpiration, DefaultCleanupInterval)
	got, ok := cache.Get(context.Background(), "absent")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_Expires(t *testing.T) {
	cache := NewInMemoryCacheManager[string]("head", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "head", "<link>", 10*time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := cache.Get(context.Background(), "head")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[int]("counts", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(ctx, "a", 1, DefaultExpiration)
	cache.Set(ctx, "b", 2, DefaultExpiration)
	cache.Set(ctx, "c", 3, DefaultExpiration)

	cache.Delete(ctx, "a", "b")
	_, ok := cache.Get(ctx, "a")
	require.False(t, ok)
	_, ok = cache.Get(ctx, "c")
	require.True(t, ok)

	cache.Flush(ctx)
	require.Zero(t, cache.ItemCount())
}
