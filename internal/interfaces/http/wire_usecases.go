package http

import (
	"fmt"

	catalogUsecases "github.com/tenantgate/tenantgate/internal/application/catalog/usecases"
	subscriptionUsecases "github.com/tenantgate/tenantgate/internal/application/subscription/usecases"
	"github.com/tenantgate/tenantgate/internal/infrastructure/cache"
	"github.com/tenantgate/tenantgate/internal/infrastructure/scheduler"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type allUseCases struct {
	// Catalog
	createPlan     *catalogUsecases.CreatePlanUseCase
	updatePlan     *catalogUsecases.UpdatePlanUseCase
	getPlan        *catalogUsecases.GetPlanUseCase
	listPlans      *catalogUsecases.ListPlansUseCase
	deletePlan     *catalogUsecases.DeletePlanUseCase
	setPlanModules *catalogUsecases.SetPlanModulesUseCase
	createModule   *catalogUsecases.CreateModuleUseCase
	updateModule   *catalogUsecases.UpdateModuleUseCase
	getModule      *catalogUsecases.GetModuleUseCase
	listModules    *catalogUsecases.ListModulesUseCase
	deleteModule   *catalogUsecases.DeleteModuleUseCase
	createFeature  *catalogUsecases.CreateFeatureUseCase
	updateFeature  *catalogUsecases.UpdateFeatureUseCase
	listFeatures   *catalogUsecases.ListFeaturesUseCase
	deleteFeature  *catalogUsecases.DeleteFeatureUseCase

	// Tenants and subscription lifecycle
	createTenant      *subscriptionUsecases.CreateTenantUseCase
	getTenant         *subscriptionUsecases.GetTenantUseCase
	listTenants       *subscriptionUsecases.ListTenantsUseCase
	changeTenantPlan  *subscriptionUsecases.ChangeTenantPlanUseCase
	setTenantActive   *subscriptionUsecases.SetTenantActiveUseCase
	renewTenant       *subscriptionUsecases.RenewTenantUseCase
	blockTenant       *subscriptionUsecases.BlockTenantUseCase
	unblockTenant     *subscriptionUsecases.UnblockTenantUseCase
	checkSubscription *subscriptionUsecases.CheckSubscriptionUseCase
	summary           *subscriptionUsecases.GetSubscriptionSummaryUseCase
	sweep             *subscriptionUsecases.SweepSubscriptionsUseCase
}

func (c *Container) initUseCases() error {
	r := c.repos
	notifier := c.catalogNotifier()
	catalogLog := logger.WithComponent("catalog")
	subLog := logger.WithComponent("subscription")

	ucs := &allUseCases{
		createPlan:     catalogUsecases.NewCreatePlanUseCase(r.plan, notifier, catalogLog),
		updatePlan:     catalogUsecases.NewUpdatePlanUseCase(r.plan, r.module, notifier, catalogLog),
		getPlan:        catalogUsecases.NewGetPlanUseCase(r.plan, r.module, catalogLog),
		listPlans:      catalogUsecases.NewListPlansUseCase(r.plan, r.module, catalogLog),
		deletePlan:     catalogUsecases.NewDeletePlanUseCase(r.plan, r.tenant, r.txMgr, notifier, catalogLog),
		setPlanModules: catalogUsecases.NewSetPlanModulesUseCase(r.plan, r.module, r.txMgr, notifier, catalogLog),
		createModule:   catalogUsecases.NewCreateModuleUseCase(r.module, notifier, catalogLog),
		updateModule:   catalogUsecases.NewUpdateModuleUseCase(r.module, notifier, catalogLog),
		getModule:      catalogUsecases.NewGetModuleUseCase(r.module, catalogLog),
		listModules:    catalogUsecases.NewListModulesUseCase(r.module, catalogLog),
		deleteModule:   catalogUsecases.NewDeleteModuleUseCase(r.module, notifier, catalogLog),
		createFeature:  catalogUsecases.NewCreateFeatureUseCase(r.module, r.feature, notifier, catalogLog),
		updateFeature:  catalogUsecases.NewUpdateFeatureUseCase(r.feature, notifier, catalogLog),
		listFeatures:   catalogUsecases.NewListFeaturesUseCase(r.module, r.feature, catalogLog),
		deleteFeature:  catalogUsecases.NewDeleteFeatureUseCase(r.feature, notifier, catalogLog),

		createTenant:      subscriptionUsecases.NewCreateTenantUseCase(r.tenant, r.plan, subLog),
		getTenant:         subscriptionUsecases.NewGetTenantUseCase(r.tenant, subLog),
		listTenants:       subscriptionUsecases.NewListTenantsUseCase(r.tenant, subLog),
		changeTenantPlan:  subscriptionUsecases.NewChangeTenantPlanUseCase(r.tenant, r.plan, subLog),
		setTenantActive:   subscriptionUsecases.NewSetTenantActiveUseCase(r.tenant, subLog),
		renewTenant:       subscriptionUsecases.NewRenewTenantUseCase(r.tenant, subLog),
		blockTenant:       subscriptionUsecases.NewBlockTenantUseCase(r.tenant, subLog),
		unblockTenant:     subscriptionUsecases.NewUnblockTenantUseCase(r.tenant, subLog),
		checkSubscription: subscriptionUsecases.NewCheckSubscriptionUseCase(r.tenant, subLog),
		summary:           subscriptionUsecases.NewGetSubscriptionSummaryUseCase(r.tenant, r.plan, subLog),
		sweep:             subscriptionUsecases.NewSweepSubscriptionsUseCase(r.tenant, c.cfg.Subscription.PendingWindowDays, subLog),
	}
	c.ucs = ucs

	if c.redis != nil {
		ucs.sweep.SetLocker(cache.NewRedisSweepLock(c.redis, c.cfg.Subscription.SweepLockTTL, logger.WithComponent("sweep-lock")))
	}

	schedulerManager, err := scheduler.NewSchedulerManager(logger.WithComponent("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := schedulerManager.RegisterSubscriptionSweep(ucs.sweep, c.cfg.Subscription.SweepInterval, c.cfg.Subscription.JobTimeout); err != nil {
		return fmt.Errorf("failed to register subscription sweep: %w", err)
	}
	c.scheduler = schedulerManager

	return nil
}
