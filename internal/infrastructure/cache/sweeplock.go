package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

const (
	sweepLockKey        = "tenantgate:lock:subscription-sweep"
	DefaultSweepLockTTL = 10 * time.Minute
)

// releaseScript deletes the key only while it still holds the caller's token,
// so an expired holder never frees a lock that a newer holder owns.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisSweepLock lets a single instance run the subscription sweep at a time.
type RedisSweepLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisSweepLock(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisSweepLock {
	if ttl <= 0 {
		ttl = DefaultSweepLockTTL
	}
	return &RedisSweepLock{
		client: client,
		key:    sweepLockKey,
		ttl:    ttl,
		logger: logger,
	}
}

func (l *RedisSweepLock) TryLock(ctx context.Context) (func(), bool, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire sweep lock: %w", err)
	}
	if !ok {
		l.logger.Debugw("sweep lock held elsewhere", "key", l.key)
		return nil, false, nil
	}

	release := func() {
		// the caller's context may already be cancelled
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{l.key}, token).Err(); err != nil {
			l.logger.Warnw("failed to release sweep lock", "key", l.key, "error", err)
		}
	}
	return release, true, nil
}
