package pubsub

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type countingInvalidator struct {
	n atomic.Int32
}

func (c *countingInvalidator) Invalidate() { c.n.Add(1) }

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestLocalCatalogNotifier(t *testing.T) {
	inv := &countingInvalidator{}
	n := NewLocalCatalogNotifier(inv, logger.NewNop())
	require.NoError(t, n.NotifyCatalogChanged(context.Background(), "plan_created"))
	assert.Equal(t, int32(1), inv.n.Load())
}

func TestRedisCatalogEventBus_PeerInvalidation(t *testing.T) {
	_, client := setupTestRedis(t)

	localInv := &countingInvalidator{}
	peerInv := &countingInvalidator{}
	local := NewRedisCatalogEventBus(client, localInv, logger.NewNop())
	peer := NewRedisCatalogEventBus(client, peerInv, logger.NewNop())
	require.NotEqual(t, local.InstanceID(), peer.InstanceID())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 2)
	go func() { done <- local.Subscribe(ctx) }()
	go func() { done <- peer.Subscribe(ctx) }()

	// both subscribers invalidate once on connect
	require.Eventually(t, func() bool {
		return localInv.n.Load() == 1 && peerInv.n.Load() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, local.NotifyCatalogChanged(ctx, "module_updated"))
	assert.Equal(t, int32(2), localInv.n.Load())

	require.Eventually(t, func() bool { return peerInv.n.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	// the publisher ignores its own echo
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(2), localInv.n.Load())

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestRedisCatalogEventBus_PublishFailureStillInvalidates(t *testing.T) {
	mr, client := setupTestRedis(t)
	inv := &countingInvalidator{}
	bus := NewRedisCatalogEventBus(client, inv, logger.NewNop())

	mr.Close()

	err := bus.NotifyCatalogChanged(context.Background(), "plan_deleted")
	assert.Error(t, err)
	assert.Equal(t, int32(1), inv.n.Load())
}

func TestRedisCatalogEventBus_IgnoresMalformedPayload(t *testing.T) {
	_, client := setupTestRedis(t)
	inv := &countingInvalidator{}
	bus := NewRedisCatalogEventBus(client, inv, logger.NewNop())

	bus.handle("{not json")
	own, err := json.Marshal(CatalogChangeEvent{Reason: "x", InstanceID: bus.InstanceID()})
	require.NoError(t, err)
	bus.handle(string(own))

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, inv.n.Load())
}
