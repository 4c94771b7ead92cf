package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tenantgate/tenantgate/internal/application/testutil"
	apperrors "github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

func TestCreatePlanUseCase(t *testing.T) {
	store := testutil.NewStore()
	notifier := new(mockNotifier)
	notifier.On("NotifyCatalogChanged", mock.Anything, "plan_created").Return(nil).Once()
	uc := NewCreatePlanUseCase(store.Plans(), notifier, logger.NewNop())

	got, err := uc.Execute(context.Background(), CreatePlanCommand{
		Code:           "B",
		Name:           "Business",
		MonthlyPrice:   4900,
		StorageLimitMB: 5120,
		MaxFileSizeMB:  5,
		MaxUsers:       10,
		Metadata:       map[string]interface{}{"tier": "mid"},
	})

	require.NoError(t, err)
	assert.NotZero(t, got.ID)
	assert.Equal(t, "B", got.Code)
	assert.Equal(t, int64(5120), got.StorageLimitMB)
	assert.Equal(t, "mid", got.Metadata["tier"])
	assert.Empty(t, got.ModuleIDs)
	notifier.AssertExpectations(t)
}

func TestCreatePlanUseCase_Rejections(t *testing.T) {
	store := testutil.NewStore()
	store.MustPlan("A", 100)
	uc := NewCreatePlanUseCase(store.Plans(), nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), CreatePlanCommand{Code: "A", Name: "Again"})
	assert.True(t, apperrors.IsConflictError(err))

	_, err = uc.Execute(context.Background(), CreatePlanCommand{Code: "Z", Name: "Neg", StorageLimitMB: -1})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), CreatePlanCommand{Code: "Y"})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestUpdatePlanUseCase_PartialUpdate(t *testing.T) {
	store := testutil.NewStore()
	plan := store.MustPlan("A", 100)
	mod := store.MustModule("files", false)
	store.MustLink(plan.ID(), mod.ID())
	notifier := new(mockNotifier)
	notifier.On("NotifyCatalogChanged", mock.Anything, "plan_updated").Return(errors.New("redis down"))
	uc := NewUpdatePlanUseCase(store.Plans(), store.Modules(), notifier, logger.NewNop())

	got, err := uc.Execute(context.Background(), UpdatePlanCommand{
		PlanID:         plan.ID(),
		Name:           ptr("Starter"),
		StorageLimitMB: ptr(int64(250)),
	})

	require.NoError(t, err, "notification failures do not fail the update")
	assert.Equal(t, "Starter", got.Name)
	assert.Equal(t, int64(250), got.StorageLimitMB)
	assert.Equal(t, plan.MaxUsers(), got.MaxUsers)
	assert.Equal(t, []uint{mod.ID()}, got.ModuleIDs)
	notifier.AssertExpectations(t)
}

func TestUpdatePlanUseCase_Errors(t *testing.T) {
	store := testutil.NewStore()
	plan := store.MustPlan("A", 100)
	uc := NewUpdatePlanUseCase(store.Plans(), store.Modules(), nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), UpdatePlanCommand{PlanID: 999, Name: ptr("x")})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = uc.Execute(context.Background(), UpdatePlanCommand{PlanID: plan.ID(), MaxUsers: ptr(-3)})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), UpdatePlanCommand{PlanID: plan.ID(), Name: ptr("  ")})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestDeletePlanUseCase(t *testing.T) {
	store := testutil.NewStore()
	inUse := store.MustPlan("A", 100)
	unused := store.MustPlan("B", 100)
	mod := store.MustModule("files", false)
	store.MustLink(unused.ID(), mod.ID())
	store.MustTenant(testutil.TenantSeed{PlanID: inUse.ID()})

	notifier := new(mockNotifier)
	notifier.On("NotifyCatalogChanged", mock.Anything, "plan_deleted").Return(nil).Once()
	uc := NewDeletePlanUseCase(store.Plans(), store.Tenants(), store.Transactions(), notifier, logger.NewNop())
	ctx := context.Background()

	err := uc.Execute(ctx, inUse.ID())
	assert.True(t, apperrors.IsConflictError(err))

	err = uc.Execute(ctx, 999)
	assert.True(t, apperrors.IsNotFoundError(err))

	require.NoError(t, uc.Execute(ctx, unused.ID()))
	gone, err := store.Plans().GetByID(ctx, unused.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)
	ids, err := store.Modules().ListPlanModuleIDs(ctx, unused.ID())
	require.NoError(t, err)
	assert.Empty(t, ids)
	notifier.AssertExpectations(t)
}

func TestGetAndListPlans(t *testing.T) {
	store := testutil.NewStore()
	a := store.MustPlan("A", 100)
	store.MustPlan("B", 200)
	m1 := store.MustModule("m1", false)
	m2 := store.MustModule("m2", false)
	store.MustLink(a.ID(), m2.ID(), m1.ID())
	ctx := context.Background()

	got, err := NewGetPlanUseCase(store.Plans(), store.Modules(), logger.NewNop()).Execute(ctx, a.ID())
	require.NoError(t, err)
	assert.Equal(t, []uint{m1.ID(), m2.ID()}, got.ModuleIDs)

	_, err = NewGetPlanUseCase(store.Plans(), store.Modules(), logger.NewNop()).Execute(ctx, 999)
	assert.True(t, apperrors.IsNotFoundError(err))

	list, err := NewListPlansUseCase(store.Plans(), store.Modules(), logger.NewNop()).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Code)
	assert.Len(t, list[0].ModuleIDs, 2)
	assert.Empty(t, list[1].ModuleIDs)
}

func TestSetPlanModulesUseCase(t *testing.T) {
	store := testutil.NewStore()
	plan := store.MustPlan("A", 100)
	m1 := store.MustModule("m1", false)
	m2 := store.MustModule("m2", true)
	notifier := new(mockNotifier)
	notifier.On("NotifyCatalogChanged", mock.Anything, "plan_modules_replaced").Return(nil)
	uc := NewSetPlanModulesUseCase(store.Plans(), store.Modules(), store.Transactions(), notifier, logger.NewNop())
	ctx := context.Background()

	got, err := uc.Execute(ctx, SetPlanModulesCommand{PlanID: plan.ID(), ModuleIDs: []uint{m2.ID(), m1.ID(), m2.ID()}})
	require.NoError(t, err)
	assert.Equal(t, []uint{m1.ID(), m2.ID()}, got.ModuleIDs)

	got, err = uc.Execute(ctx, SetPlanModulesCommand{PlanID: plan.ID()})
	require.NoError(t, err)
	assert.Empty(t, got.ModuleIDs)
	ids, err := store.Modules().ListPlanModuleIDs(ctx, plan.ID())
	require.NoError(t, err)
	assert.Empty(t, ids)

	notifier.AssertNumberOfCalls(t, "NotifyCatalogChanged", 2)
}

func TestSetPlanModulesUseCase_UnknownModuleLeavesLinks(t *testing.T) {
	store := testutil.NewStore()
	plan := store.MustPlan("A", 100)
	m1 := store.MustModule("m1", false)
	store.MustLink(plan.ID(), m1.ID())
	uc := NewSetPlanModulesUseCase(store.Plans(), store.Modules(), store.Transactions(), nil, logger.NewNop())
	ctx := context.Background()

	_, err := uc.Execute(ctx, SetPlanModulesCommand{PlanID: plan.ID(), ModuleIDs: []uint{m1.ID(), 404}})
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	assert.Equal(t, "module_ids=[404]", appErr.Details)

	ids, err := store.Modules().ListPlanModuleIDs(ctx, plan.ID())
	require.NoError(t, err)
	assert.Equal(t, []uint{m1.ID()}, ids)

	_, err = uc.Execute(ctx, SetPlanModulesCommand{PlanID: 999})
	assert.True(t, apperrors.IsNotFoundError(err))
}
