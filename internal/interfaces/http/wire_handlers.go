package http

import (
	"fmt"

	"github.com/tenantgate/tenantgate/internal/interfaces/http/handlers"
)

type allHandlers struct {
	health       *handlers.HealthHandler
	plan         *handlers.PlanHandler
	module       *handlers.ModuleHandler
	tenant       *handlers.TenantHandler
	subscription *handlers.SubscriptionHandler
	file         *handlers.FileHandler
}

func (c *Container) newHandlers() (*allHandlers, error) {
	u := c.ucs

	sqlDB, err := c.db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB for health checks: %w", err)
	}

	return &allHandlers{
		health: handlers.NewHealthHandler(sqlDB, c.log),
		plan: handlers.NewPlanHandler(
			u.createPlan, u.updatePlan, u.getPlan, u.listPlans, u.deletePlan, u.setPlanModules, c.log,
		),
		module: handlers.NewModuleHandler(
			u.createModule, u.updateModule, u.getModule, u.listModules, u.deleteModule,
			u.createFeature, u.updateFeature, u.listFeatures, u.deleteFeature,
			c.log,
		),
		tenant: handlers.NewTenantHandler(handlers.TenantHandlerDeps{
			CreateTenant:     u.createTenant,
			GetTenant:        u.getTenant,
			ListTenants:      u.listTenants,
			ChangeTenantPlan: u.changeTenantPlan,
			SetTenantActive:  u.setTenantActive,
			RenewTenant:      u.renewTenant,
			BlockTenant:      u.blockTenant,
			UnblockTenant:    u.unblockTenant,
			Summary:          u.summary,
			Sweep:            u.sweep,
		}, c.log),
		subscription: handlers.NewSubscriptionHandler(u.summary, c.guard, c.log),
		file:         handlers.NewFileHandler(c.cfg.Storage.UploadField, c.log),
	}, nil
}
