package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache fills a CacheManager from fn on misses.
type ReadThroughCache[V any] struct {
	cache           CacheManager[V]
	fn              func(ctx context.Context) (V, error)
	shouldSkipCache bool
}

// NewReadThroughCache wraps fn. When shouldSkipCache is set every Get calls fn.
func NewReadThroughCache[V any](
	cache CacheManager[V],
	fn func(ctx context.Context) (V, error),
	shouldSkipCache bool,
) *ReadThroughCache[V] {
	return &ReadThroughCache[V]{
		cache:           cache,
		fn:              fn,
		shouldSkipCache: shouldSkipCache,
	}
}

// Get returns the cached value for key, computing and storing it on a miss.
// Errors from fn are returned and nothing is cached.
func (r *ReadThroughCache[V]) Get(ctx context.Context, key string, ttl time.Duration) (V, error) {
	if r.shouldSkipCache {
		return r.fn(ctx)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	value, err := r.fn(ctx)
	if err != nil {
		return value, err
	}

	r.cache.Set(ctx, key, value, ttl)
	return value, nil
}

