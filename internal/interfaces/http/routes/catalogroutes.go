package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tenantgate/tenantgate/internal/interfaces/http/handlers"
	"github.com/tenantgate/tenantgate/internal/interfaces/http/middleware"
	"github.com/tenantgate/tenantgate/internal/shared/authorization"
)

// CatalogRouteConfig holds dependencies for the operator catalog routes.
type CatalogRouteConfig struct {
	PlanHandler    *handlers.PlanHandler
	ModuleHandler  *handlers.ModuleHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupCatalogRoutes configures plan, module and feature administration.
func SetupCatalogRoutes(engine *gin.Engine, cfg *CatalogRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())
	admin.Use(authorization.RequireAdmin())

	plans := admin.Group("/plans")
	{
		plans.POST("", cfg.PlanHandler.CreatePlan)
		plans.GET("", cfg.PlanHandler.ListPlans)
		plans.GET("/:id", cfg.PlanHandler.GetPlan)
		plans.PUT("/:id", cfg.PlanHandler.UpdatePlan)
		plans.DELETE("/:id", cfg.PlanHandler.DeletePlan)
		plans.PUT("/:id/modules", cfg.PlanHandler.SetPlanModules)
	}

	modules := admin.Group("/modules")
	{
		modules.POST("", cfg.ModuleHandler.CreateModule)
		modules.GET("", cfg.ModuleHandler.ListModules)
		modules.GET("/:id", cfg.ModuleHandler.GetModule)
		modules.PUT("/:id", cfg.ModuleHandler.UpdateModule)
		modules.DELETE("/:id", cfg.ModuleHandler.DeleteModule)
		modules.POST("/:id/features", cfg.ModuleHandler.CreateFeature)
		modules.GET("/:id/features", cfg.ModuleHandler.ListFeatures)
	}

	features := admin.Group("/features")
	{
		features.PUT("/:id", cfg.ModuleHandler.UpdateFeature)
		features.DELETE("/:id", cfg.ModuleHandler.DeleteFeature)
	}
}
