package handlers

import (
	"context"

	catalogdto "github.com/tenantgate/tenantgate/internal/application/catalog/dto"
	"github.com/tenantgate/tenantgate/internal/application/catalog/usecases"
)

// Use case interfaces for ModuleHandler

type createModuleUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateModuleCommand) (*catalogdto.ModuleDTO, error)
}

type updateModuleUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateModuleCommand) (*catalogdto.ModuleDTO, error)
}

type getModuleUseCase interface {
	Execute(ctx context.Context, moduleID uint) (*catalogdto.ModuleDTO, error)
}

type listModulesUseCase interface {
	Execute(ctx context.Context) ([]*catalogdto.ModuleDTO, error)
}

type deleteModuleUseCase interface {
	Execute(ctx context.Context, moduleID uint) error
}

type createFeatureUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateFeatureCommand) (*catalogdto.FeatureDTO, error)
}

type updateFeatureUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateFeatureCommand) (*catalogdto.FeatureDTO, error)
}

type listFeaturesUseCase interface {
	Execute(ctx context.Context, moduleID uint) ([]*catalogdto.FeatureDTO, error)
}

type deleteFeatureUseCase interface {
	Execute(ctx context.Context, featureID uint) error
}
