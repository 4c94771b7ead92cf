package handlers

import (
	"context"

	catalogdto "github.com/tenantgate/tenantgate/internal/application/catalog/dto"
	"github.com/tenantgate/tenantgate/internal/application/catalog/usecases"
)

// Use case interfaces for PlanHandler

type createPlanUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreatePlanCommand) (*catalogdto.PlanDTO, error)
}

type updatePlanUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdatePlanCommand) (*catalogdto.PlanDTO, error)
}

type getPlanUseCase interface {
	Execute(ctx context.Context, planID uint) (*catalogdto.PlanDTO, error)
}

type listPlansUseCase interface {
	Execute(ctx context.Context) ([]*catalogdto.PlanDTO, error)
}

type deletePlanUseCase interface {
	Execute(ctx context.Context, planID uint) error
}

type setPlanModulesUseCase interface {
	Execute(ctx context.Context, cmd usecases.SetPlanModulesCommand) (*catalogdto.PlanDTO, error)
}
