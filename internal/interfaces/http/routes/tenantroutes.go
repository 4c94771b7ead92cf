package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tenantgate/tenantgate/internal/interfaces/http/handlers"
	"github.com/tenantgate/tenantgate/internal/interfaces/http/middleware"
	"github.com/tenantgate/tenantgate/internal/shared/authorization"
)

// TenantRouteConfig holds dependencies for operator tenant administration.
type TenantRouteConfig struct {
	TenantHandler  *handlers.TenantHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupTenantRoutes configures tenant administration and the manual sweep trigger.
func SetupTenantRoutes(engine *gin.Engine, cfg *TenantRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())
	admin.Use(authorization.RequireAdmin())

	tenants := admin.Group("/tenants")
	{
		tenants.POST("", cfg.TenantHandler.CreateTenant)
		tenants.GET("", cfg.TenantHandler.ListTenants)
		tenants.GET("/:id", cfg.TenantHandler.GetTenant)
		tenants.PUT("/:id/plan", cfg.TenantHandler.ChangeTenantPlan)
		tenants.PUT("/:id/active", cfg.TenantHandler.SetTenantActive)
		tenants.POST("/:id/renew", cfg.TenantHandler.RenewTenant)
		tenants.POST("/:id/block", cfg.TenantHandler.BlockTenant)
		tenants.POST("/:id/unblock", cfg.TenantHandler.UnblockTenant)
		tenants.GET("/:id/subscription", cfg.TenantHandler.GetTenantSubscription)
	}

	admin.POST("/subscriptions/sweep", cfg.TenantHandler.RunSweep)
}
