package http

import (
	"gorm.io/gorm"

	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/infrastructure/repository"
	"github.com/tenantgate/tenantgate/internal/shared/db"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type repositories struct {
	plan    catalog.PlanRepository
	module  catalog.ModuleRepository
	feature catalog.FeatureRepository
	tenant  tenant.Repository
	txMgr   *db.TransactionManager
}

func newRepositories(gdb *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		plan:    repository.NewPlanRepository(gdb, log),
		module:  repository.NewModuleRepository(gdb, log),
		feature: repository.NewFeatureRepository(gdb, log),
		tenant:  repository.NewTenantRepository(gdb, log),
		txMgr:   db.NewTransactionManager(gdb),
	}
}
