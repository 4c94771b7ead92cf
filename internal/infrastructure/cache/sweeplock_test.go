package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisSweepLock_Exclusive(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	a := NewRedisSweepLock(client, time.Minute, logger.NewNop())
	b := NewRedisSweepLock(client, time.Minute, logger.NewNop())

	release, ok, err := a.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Minute, mr.TTL(sweepLockKey))

	_, ok, err = b.TryLock(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	release()
	assert.False(t, mr.Exists(sweepLockKey))

	releaseB, ok, err := b.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	releaseB()
}

func TestRedisSweepLock_StaleReleaseKeepsNewHolder(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	a := NewRedisSweepLock(client, time.Minute, logger.NewNop())
	releaseA, ok, err := a.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)

	b := NewRedisSweepLock(client, time.Minute, logger.NewNop())
	_, ok, err = b.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	releaseA()
	assert.True(t, mr.Exists(sweepLockKey), "expired holder must not free the new lock")
}

func TestRedisSweepLock_RedisDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	lock := NewRedisSweepLock(client, 0, logger.NewNop())
	assert.Equal(t, DefaultSweepLockTTL, lock.ttl)

	mr.Close()

	_, ok, err := lock.TryLock(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}
