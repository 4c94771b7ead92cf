package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tenantgate/tenantgate/internal/shared/goroutine"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

const catalogChangeChannel = "tenantgate:catalog:change"

// CatalogInvalidator drops cached catalog reads. The entitlement resolver implements it.
type CatalogInvalidator interface {
	Invalidate()
}

// CatalogChangeEvent tells other instances that plans, modules or features changed.
type CatalogChangeEvent struct {
	Reason     string `json:"reason"`
	InstanceID string `json:"instance_id"`
	Timestamp  int64  `json:"timestamp"`
}

// LocalCatalogNotifier invalidates the in-process cache only. It is used when Redis is disabled.
type LocalCatalogNotifier struct {
	invalidator CatalogInvalidator
	logger      logger.Interface
}

func NewLocalCatalogNotifier(invalidator CatalogInvalidator, logger logger.Interface) *LocalCatalogNotifier {
	return &LocalCatalogNotifier{invalidator: invalidator, logger: logger}
}

func (n *LocalCatalogNotifier) NotifyCatalogChanged(ctx context.Context, reason string) error {
	n.invalidator.Invalidate()
	n.logger.Debugw("catalog cache invalidated", "reason", reason)
	return nil
}

// RedisCatalogEventBus invalidates the local cache and fans the change out to every
// other instance through Redis Pub/Sub.
type RedisCatalogEventBus struct {
	client      *redis.Client
	invalidator CatalogInvalidator
	logger      logger.Interface
	instanceID  string

	initialBackoff time.Duration
	maxBackoff     time.Duration
}

func NewRedisCatalogEventBus(client *redis.Client, invalidator CatalogInvalidator, logger logger.Interface) *RedisCatalogEventBus {
	return &RedisCatalogEventBus{
		client:         client,
		invalidator:    invalidator,
		logger:         logger,
		instanceID:     uuid.NewString(),
		initialBackoff: time.Second,
		maxBackoff:     30 * time.Second,
	}
}

func (b *RedisCatalogEventBus) InstanceID() string {
	return b.instanceID
}

// NotifyCatalogChanged always invalidates locally, even when the publish fails.
func (b *RedisCatalogEventBus) NotifyCatalogChanged(ctx context.Context, reason string) error {
	b.invalidator.Invalidate()

	data, err := json.Marshal(CatalogChangeEvent{
		Reason:     reason,
		InstanceID: b.instanceID,
		Timestamp:  time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal catalog change event: %w", err)
	}

	if err := b.client.Publish(ctx, catalogChangeChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish catalog change event", "reason", reason, "error", err)
		return fmt.Errorf("failed to publish catalog change event: %w", err)
	}

	b.logger.Debugw("catalog change event published", "reason", reason)
	return nil
}

// Subscribe blocks until ctx is done, reconnecting with exponential backoff
// whenever the Redis subscription drops.
func (b *RedisCatalogEventBus) Subscribe(ctx context.Context) error {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = b.initialBackoff
	expBackoff.MaxInterval = b.maxBackoff
	expBackoff.Reset()

	for {
		err := b.subscribe(ctx, expBackoff)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		delay := expBackoff.NextBackOff()
		if delay == backoff.Stop {
			return fmt.Errorf("catalog subscription gave up: %w", err)
		}

		b.logger.Warnw("catalog subscription disconnected, reconnecting",
			"channel", catalogChangeChannel,
			"error", err,
			"backoff", delay,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (b *RedisCatalogEventBus) subscribe(ctx context.Context, expBackoff *backoff.ExponentialBackOff) error {
	sub := b.client.Subscribe(ctx, catalogChangeChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", catalogChangeChannel, err)
	}
	expBackoff.Reset()

	// a change may have been missed while disconnected
	b.invalidator.Invalidate()

	b.logger.Infow("subscribed to catalog change events", "channel", catalogChangeChannel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("catalog event subscriber stopped", "reason", ctx.Err())
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("catalog event channel closed")
			}
			b.handle(msg.Payload)
		}
	}
}

func (b *RedisCatalogEventBus) handle(payload string) {
	var event CatalogChangeEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		b.logger.Warnw("failed to unmarshal catalog change event", "payload", payload, "error", err)
		return
	}

	// already invalidated when published
	if event.InstanceID == b.instanceID {
		return
	}

	goroutine.SafeGo(b.logger, "catalog-invalidate", func() {
		b.invalidator.Invalidate()
		b.logger.Debugw("catalog cache invalidated by peer", "reason", event.Reason, "peer", event.InstanceID)
	})
}
