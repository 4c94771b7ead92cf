package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	catalogUsecases "github.com/tenantgate/tenantgate/internal/application/catalog/usecases"
	"github.com/tenantgate/tenantgate/internal/application/entitlement"
	"github.com/tenantgate/tenantgate/internal/application/storagequota"
	"github.com/tenantgate/tenantgate/internal/infrastructure/auth"
	"github.com/tenantgate/tenantgate/internal/infrastructure/pubsub"
	"github.com/tenantgate/tenantgate/internal/interfaces/http/middleware"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

const redisPingTimeout = 5 * time.Second

// initInfrastructure connects Redis when enabled and builds the token verifier.
func (c *Container) initInfrastructure() error {
	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.AccessExpMinutes)

	if !c.cfg.Redis.Enabled {
		c.log.Infow("redis disabled, running single instance")
		return nil
	}

	client, err := initRedis(c.cfg.Redis.GetAddr(), c.cfg.Redis.Password, c.cfg.Redis.DB, c.log)
	if err != nil {
		return err
	}
	c.redis = client
	return nil
}

func initRedis(addr, password string, dbIndex int, log logger.Interface) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       dbIndex,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	log.Infow("redis connection established", "addr", addr)
	return client, nil
}

// initDomainServices builds the entitlement resolver and the storage quota guard.
func (c *Container) initDomainServices() {
	c.resolver = entitlement.NewResolver(
		c.repos.plan,
		c.repos.module,
		c.repos.feature,
		c.repos.tenant,
		c.cfg.Entitlement.CacheSize,
		c.cfg.Entitlement.CacheTTL,
		logger.WithComponent("entitlement"),
	)

	caps := storagequota.NewFileCapTable(c.cfg.Storage.FileCaps)
	c.guard = storagequota.NewGuard(c.repos.plan, c.repos.tenant, caps, logger.WithComponent("storage-quota"))
	c.recorder = storagequota.NewRecorder(c.repos.tenant, logger.WithComponent("storage-quota"))
}

// catalogNotifier fans catalog mutations out to every instance through Redis,
// or invalidates the local resolver when Redis is off.
func (c *Container) catalogNotifier() catalogUsecases.CatalogChangeNotifier {
	if c.redis != nil {
		c.catalogBus = pubsub.NewRedisCatalogEventBus(c.redis, c.resolver, logger.WithComponent("catalog-bus"))
		return c.catalogBus
	}
	return pubsub.NewLocalCatalogNotifier(c.resolver, c.log)
}

func (c *Container) initMiddlewares() {
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log)
	c.entitlementMiddleware = middleware.NewEntitlementMiddleware(c.resolver, c.log)
	c.subscriptionGate = middleware.NewSubscriptionGateMiddleware(c.ucs.checkSubscription, c.log)
	c.storageQuotaMiddleware = middleware.NewStorageQuotaMiddleware(c.guard, c.recorder, c.log)

	if c.redis != nil {
		c.rateLimiter = middleware.NewRateLimiter(c.redis, c.cfg.Server.RateLimitPerMinute, time.Minute, c.log)
	}
}
