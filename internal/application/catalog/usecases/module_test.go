package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tenantgate/tenantgate/internal/application/testutil"
	apperrors "github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

func TestModuleLifecycle(t *testing.T) {
	store := testutil.NewStore()
	notifier := new(mockNotifier)
	notifier.On("NotifyCatalogChanged", mock.Anything, mock.AnythingOfType("string")).Return(nil)
	log := logger.NewNop()
	ctx := context.Background()

	created, err := NewCreateModuleUseCase(store.Modules(), notifier, log).Execute(ctx, CreateModuleCommand{
		Code: "core", Name: "Core", IsCore: true,
	})
	require.NoError(t, err)
	assert.True(t, created.IsCore)
	assert.True(t, created.IsActive)

	_, err = NewCreateModuleUseCase(store.Modules(), notifier, log).Execute(ctx, CreateModuleCommand{Code: "core", Name: "Dup"})
	assert.True(t, apperrors.IsConflictError(err))

	updated, err := NewUpdateModuleUseCase(store.Modules(), notifier, log).Execute(ctx, UpdateModuleCommand{
		ModuleID: created.ID,
		IsCore:   ptr(false),
		IsActive: ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsCore)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Core", updated.Name)

	got, err := NewGetModuleUseCase(store.Modules(), log).Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "core", got.Code)

	list, err := NewListModulesUseCase(store.Modules(), log).Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, NewDeleteModuleUseCase(store.Modules(), notifier, log).Execute(ctx, created.ID))
	_, err = NewGetModuleUseCase(store.Modules(), log).Execute(ctx, created.ID)
	assert.True(t, apperrors.IsNotFoundError(err))

	notifier.AssertCalled(t, "NotifyCatalogChanged", mock.Anything, "module_created")
	notifier.AssertCalled(t, "NotifyCatalogChanged", mock.Anything, "module_updated")
	notifier.AssertCalled(t, "NotifyCatalogChanged", mock.Anything, "module_deleted")
}

func TestDeleteModuleUseCase_ClearsLinksAndFeatures(t *testing.T) {
	store := testutil.NewStore()
	plan := store.MustPlan("A", 100)
	mod := store.MustModule("files", false, "/api/files*")
	store.MustLink(plan.ID(), mod.ID())
	ctx := context.Background()

	require.NoError(t, NewDeleteModuleUseCase(store.Modules(), nil, logger.NewNop()).Execute(ctx, mod.ID()))

	ids, err := store.Modules().ListPlanModuleIDs(ctx, plan.ID())
	require.NoError(t, err)
	assert.Empty(t, ids)
	features, err := store.Features().ListByModule(ctx, mod.ID())
	require.NoError(t, err)
	assert.Empty(t, features)

	err = NewDeleteModuleUseCase(store.Modules(), nil, logger.NewNop()).Execute(ctx, mod.ID())
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestUpdateModuleUseCase_Errors(t *testing.T) {
	store := testutil.NewStore()
	mod := store.MustModule("files", false)
	uc := NewUpdateModuleUseCase(store.Modules(), nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), UpdateModuleCommand{ModuleID: 999})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = uc.Execute(context.Background(), UpdateModuleCommand{ModuleID: mod.ID(), Name: ptr("")})
	assert.True(t, apperrors.IsValidationError(err))
}
