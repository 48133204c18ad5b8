package cache_test

import (
	"context"
	"testing"
	"time"

	"finance_dashboard/internal/backup"
	"finance_dashboard/internal/cache"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const testRedisAddr = "localhost:6379"

func setupTestCache(t *testing.T) *cache.Cache {
	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	require.NoError(t, rdb.Del(ctx, cache.Key).Err())
	require.NoError(t, rdb.Close())

	return cache.NewCache(testRedisAddr)
}

func TestGet_Miss(t *testing.T) {
	c := setupTestCache(t)
	defer c.Close()

	_, ok := c.Get(context.Background())
	require.False(t, ok)
}

func TestSetAndGet(t *testing.T) {
	c := setupTestCache(t)
	defer c.Close()

	snap := backup.Snapshot()
	c.Set(context.Background(), snap, time.Minute)

	got, ok := c.Get(context.Background())
	require.True(t, ok)
	require.Equal(t, snap, got)
}

func TestGet_CorruptedPayload(t *testing.T) {
	c := setupTestCache(t)
	defer c.Close()

	rdb := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	defer rdb.Close()
	require.NoError(t, rdb.Set(context.Background(), cache.Key, "{broken", time.Minute).Err())

	// Нечитаемое значение равносильно промаху.
	_, ok := c.Get(context.Background())
	require.False(t, ok)
}
