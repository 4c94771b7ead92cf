package http

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tenantgate/tenantgate/internal/application/entitlement"
	"github.com/tenantgate/tenantgate/internal/application/storagequota"
	"github.com/tenantgate/tenantgate/internal/infrastructure/auth"
	"github.com/tenantgate/tenantgate/internal/infrastructure/config"
	"github.com/tenantgate/tenantgate/internal/infrastructure/pubsub"
	"github.com/tenantgate/tenantgate/internal/infrastructure/scheduler"
	"github.com/tenantgate/tenantgate/internal/interfaces/http/middleware"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

// Container holds the infrastructure, repositories, use cases, handlers and
// background services of the engine, and tears them down in Shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware         *middleware.AuthMiddleware
	entitlementMiddleware  *middleware.EntitlementMiddleware
	subscriptionGate       *middleware.SubscriptionGateMiddleware
	storageQuotaMiddleware *middleware.StorageQuotaMiddleware
	rateLimiter            *middleware.RateLimiter

	// Domain services
	jwtSvc   *auth.JWTService
	resolver *entitlement.Resolver
	guard    *storagequota.Guard
	recorder *storagequota.Recorder

	// Background services
	catalogBus *pubsub.RedisCatalogEventBus
	scheduler  *scheduler.SchedulerManager

	bgCancel     context.CancelFunc
	bgWG         sync.WaitGroup
	shutdownOnce sync.Once
}

// NewContainer wires every component. Background work does not start until StartBackground.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	engine := gin.New()
	engine.MaxMultipartMemory = cfg.Storage.MaxMultipartMemoryMB << 20

	c := &Container{
		engine: engine,
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.repos = newRepositories(db, log)
	c.initDomainServices()
	if err := c.initUseCases(); err != nil {
		return nil, err
	}
	c.initMiddlewares()

	hdlrs, err := c.newHandlers()
	if err != nil {
		return nil, err
	}
	c.hdlrs = hdlrs

	return c, nil
}

// Engine returns the gin engine with routes registered by SetupRoutes.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// StartBackground starts the sweep scheduler and, with Redis, the catalog change subscription.
func (c *Container) StartBackground(ctx context.Context) {
	bgCtx, cancel := context.WithCancel(ctx)
	c.bgCancel = cancel

	c.scheduler.Start()

	if c.catalogBus != nil {
		c.bgWG.Add(1)
		go func() {
			defer c.bgWG.Done()
			if err := c.catalogBus.Subscribe(bgCtx); err != nil && bgCtx.Err() == nil {
				c.log.Errorw("catalog change subscription stopped", "error", err)
			}
		}()
	}
}

// Shutdown stops background work and releases connections. It is safe to call more than once.
func (c *Container) Shutdown() {
	c.shutdownOnce.Do(func() {
		if c.bgCancel != nil {
			c.bgCancel()
		}
		if c.scheduler != nil {
			if err := c.scheduler.Stop(); err != nil {
				c.log.Warnw("scheduler stop failed", "error", err)
			}
		}
		c.bgWG.Wait()

		if c.redis != nil {
			if err := c.redis.Close(); err != nil {
				c.log.Warnw("redis close failed", "error", err)
			}
		}
		c.log.Infow("container shut down")
	})
}
