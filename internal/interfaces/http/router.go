package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/tenantgate/tenantgate/docs"
	"github.com/tenantgate/tenantgate/internal/interfaces/http/middleware"
	"github.com/tenantgate/tenantgate/internal/interfaces/http/routes"
)

// SetupRoutes installs the global middleware chain and every route group.
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.AccessLogger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.ErrorHandler(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", c.hdlrs.health.HealthCheck)

	if c.cfg.Server.Mode != gin.ReleaseMode {
		c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes.SetupCatalogRoutes(c.engine, &routes.CatalogRouteConfig{
		PlanHandler:    c.hdlrs.plan,
		ModuleHandler:  c.hdlrs.module,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupTenantRoutes(c.engine, &routes.TenantRouteConfig{
		TenantHandler:  c.hdlrs.tenant,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupAPIRoutes(c.engine, &routes.APIRouteConfig{
		SubscriptionHandler:    c.hdlrs.subscription,
		FileHandler:            c.hdlrs.file,
		AuthMiddleware:         c.authMiddleware,
		SubscriptionGate:       c.subscriptionGate,
		EntitlementMiddleware:  c.entitlementMiddleware,
		StorageQuotaMiddleware: c.storageQuotaMiddleware,
		RateLimiter:            c.rateLimiter,
		UploadField:            c.cfg.Storage.UploadField,
	})

	c.log.Infow("routes registered", "count", len(c.engine.Routes()))
}
