package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantgate/tenantgate/internal/application/testutil"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	apperrors "github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

func TestCreateTenantUseCase(t *testing.T) {
	store := testutil.NewStore()
	plan := store.MustPlan("A", 100)
	uc := NewCreateTenantUseCase(store.Tenants(), store.Plans(), logger.NewNop())
	ctx := context.Background()

	got, err := uc.Execute(ctx, CreateTenantCommand{Name: "Acme", PlanID: plan.ID(), NextPaymentDate: "2025-07-01"})
	require.NoError(t, err)
	assert.NotZero(t, got.ID)
	assert.True(t, got.Active)
	assert.Equal(t, "active", got.PaymentStatus)
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), *got.NextPaymentDate)

	inactive := false
	got, err = uc.Execute(ctx, CreateTenantCommand{Name: "Dormant", PlanID: plan.ID(), Active: &inactive})
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Nil(t, got.NextPaymentDate)

	_, err = uc.Execute(ctx, CreateTenantCommand{Name: "Ghost", PlanID: 999})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = uc.Execute(ctx, CreateTenantCommand{Name: "", PlanID: plan.ID()})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(ctx, CreateTenantCommand{Name: "Bad", PlanID: plan.ID(), NextPaymentDate: "soon"})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestListTenantsUseCase(t *testing.T) {
	store := testutil.NewStore()
	for i := 0; i < 5; i++ {
		store.MustTenant(testutil.TenantSeed{PlanID: 1, Active: true})
	}
	store.MustTenant(testutil.TenantSeed{PlanID: 2, Status: tenant.PaymentStatusOverdue})
	uc := NewListTenantsUseCase(store.Tenants(), logger.NewNop())
	ctx := context.Background()

	page, err := uc.Execute(ctx, ListTenantsQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(6), page.Total)
	assert.Len(t, page.Tenants, 2)
	assert.Equal(t, 2, page.Page)

	overdue, err := uc.Execute(ctx, ListTenantsQuery{PaymentStatus: "overdue"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), overdue.Total)
	assert.Equal(t, 20, overdue.PageSize)

	byPlan, err := uc.Execute(ctx, ListTenantsQuery{PlanID: 1, PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, int64(5), byPlan.Total)
	assert.Equal(t, 100, byPlan.PageSize)

	_, err = uc.Execute(ctx, ListTenantsQuery{PaymentStatus: "late"})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestChangeTenantPlanUseCase(t *testing.T) {
	store := testutil.NewStore()
	a := store.MustPlan("A", 100)
	b := store.MustPlan("B", 500)
	tn := store.MustTenant(testutil.TenantSeed{PlanID: a.ID(), Status: tenant.PaymentStatusPending, StorageUsedMB: 40})
	uc := NewChangeTenantPlanUseCase(store.Tenants(), store.Plans(), logger.NewNop())
	ctx := context.Background()

	got, err := uc.Execute(ctx, ChangeTenantPlanCommand{TenantID: tn.ID(), PlanID: b.ID()})
	require.NoError(t, err)
	assert.Equal(t, b.ID(), got.PlanID)
	assert.Equal(t, "pending", got.PaymentStatus)
	assert.InDelta(t, 40.0, got.StorageUsedMB, 1e-9)

	_, err = uc.Execute(ctx, ChangeTenantPlanCommand{TenantID: tn.ID(), PlanID: 999})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = uc.Execute(ctx, ChangeTenantPlanCommand{TenantID: 999, PlanID: b.ID()})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = uc.Execute(ctx, ChangeTenantPlanCommand{TenantID: tn.ID()})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestSetTenantActiveUseCase_LeavesPaymentStatus(t *testing.T) {
	store := testutil.NewStore()
	tn := store.MustTenant(testutil.TenantSeed{PlanID: 1, Active: false, Status: tenant.PaymentStatusOverdue})
	uc := NewSetTenantActiveUseCase(store.Tenants(), logger.NewNop())

	got, err := uc.Execute(context.Background(), SetTenantActiveCommand{TenantID: tn.ID(), Active: true})

	require.NoError(t, err)
	assert.True(t, got.Active)
	assert.Equal(t, "overdue", got.PaymentStatus)

	_, err = uc.Execute(context.Background(), SetTenantActiveCommand{TenantID: 999, Active: true})
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestGetTenantUseCase(t *testing.T) {
	store := testutil.NewStore()
	tn := store.MustTenant(testutil.TenantSeed{PlanID: 1, Active: true})
	uc := NewGetTenantUseCase(store.Tenants(), logger.NewNop())

	got, err := uc.Execute(context.Background(), tn.ID())
	require.NoError(t, err)
	assert.Equal(t, tn.ID(), got.ID)

	_, err = uc.Execute(context.Background(), 999)
	assert.True(t, apperrors.IsNotFoundError(err))
}
