package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tenantgate/tenantgate/internal/interfaces/http/handlers"
	"github.com/tenantgate/tenantgate/internal/interfaces/http/middleware"
)

// FilesFeaturePattern is the feature every /api/files route is gated on.
const FilesFeaturePattern = "/api/files*"

// APIRouteConfig holds dependencies for tenant-facing routes.
type APIRouteConfig struct {
	SubscriptionHandler    *handlers.SubscriptionHandler
	FileHandler            *handlers.FileHandler
	AuthMiddleware         *middleware.AuthMiddleware
	SubscriptionGate       *middleware.SubscriptionGateMiddleware
	EntitlementMiddleware  *middleware.EntitlementMiddleware
	StorageQuotaMiddleware *middleware.StorageQuotaMiddleware
	RateLimiter            *middleware.RateLimiter
	UploadField            string
}

// SetupAPIRoutes configures self-service and gated tenant routes.
func SetupAPIRoutes(engine *gin.Engine, cfg *APIRouteConfig) {
	api := engine.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	api.Use(cfg.RateLimiter.Limit())

	api.GET("/subscription", cfg.SubscriptionHandler.GetMySubscription)
	api.GET("/storage/usage", cfg.SubscriptionHandler.GetMyStorageUsage)

	files := api.Group("/files")
	files.Use(cfg.SubscriptionGate.RequireActiveSubscription())
	files.Use(cfg.EntitlementMiddleware.RequireEntitlement(FilesFeaturePattern))
	{
		files.GET("", cfg.FileHandler.List)
		files.POST("",
			cfg.StorageQuotaMiddleware.EnforceStorageQuota(cfg.UploadField),
			cfg.FileHandler.Upload,
		)
	}
}
