package migration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tenantgate/tenantgate/internal/infrastructure/persistence/models"
	"github.com/tenantgate/tenantgate/internal/shared/config"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestGooseStrategy_SQLiteUpAndDown(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	strategy, err := NewGooseStrategy(config.DriverSQLite, logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, strategy.Migrate(ctx, db))

	version, err := strategy.GetVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	for _, model := range AutoMigrateModels() {
		assert.True(t, db.Migrator().HasTable(model), "%T", model)
	}

	// the scripts and the models must agree on the tenant columns
	require.NoError(t, db.Create(&models.TenantModel{PlanID: 1, Name: "acme", PaymentStatus: "active"}).Error)

	require.NoError(t, strategy.Migrate(ctx, db), "re-running is a no-op")

	require.NoError(t, strategy.MigrateDown(ctx, db, 1))
	assert.False(t, db.Migrator().HasTable(&models.TenantModel{}))
	assert.True(t, db.Migrator().HasTable(&models.PlanModel{}))
}

func TestNewGooseStrategy_UnknownDriver(t *testing.T) {
	_, err := NewGooseStrategy("postgres", logger.NewNop())
	assert.Error(t, err)
}

func TestNewManager_PicksStrategy(t *testing.T) {
	m, err := NewManager(EnvDevelopment, config.DriverSQLite, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "gorm_auto_migrate", m.GetStrategy().GetName())

	m, err = NewManager(EnvProduction, config.DriverMySQL, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "goose", m.GetStrategy().GetName())
}

func TestManager_AutoMigrate(t *testing.T) {
	db := openSQLite(t)
	m := NewManagerWithStrategy(NewGormAutoMigrateStrategy(logger.NewNop()), logger.NewNop())
	require.NoError(t, m.Migrate(context.Background(), db))
	assert.True(t, db.Migrator().HasTable(&models.ModuleFeatureModel{}))
}
