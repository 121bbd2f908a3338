package cachemanager

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type mockCacheManager struct {
	mock.Mock
}

func (m *mockCacheManager) Get(ctx context.Context, key string) (string, bool) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1)
}

func (m *mockCacheManager) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *mockCacheManager) Delete(ctx context.Context, keys ...string) {
	m.Called(ctx, keys)
}

func (m *mockCacheManager) Flush(ctx context.Context) {
	m.Called(ctx)
}
