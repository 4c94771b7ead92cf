package migration

import (
	"github.com/tenantgate/tenantgate/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every persistence model owned by the engine.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.PlanModel{},
		&models.ModuleModel{},
		&models.PlanModuleModel{},
		&models.ModuleFeatureModel{},
		&models.TenantModel{},
	}
}
