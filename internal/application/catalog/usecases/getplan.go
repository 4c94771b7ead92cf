package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/application/catalog/dto"
	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type GetPlanUseCase struct {
	planRepo   catalog.PlanRepository
	moduleRepo catalog.ModuleRepository
	logger     logger.Interface
}

func NewGetPlanUseCase(
	planRepo catalog.PlanRepository,
	moduleRepo catalog.ModuleRepository,
	logger logger.Interface,
) *GetPlanUseCase {
	return &GetPlanUseCase{
		planRepo:   planRepo,
		moduleRepo: moduleRepo,
		logger:     logger,
	}
}

func (uc *GetPlanUseCase) Execute(ctx context.Context, planID uint) (*dto.PlanDTO, error) {
	plan, err := uc.planRepo.GetByID(ctx, planID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", planID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found")
	}

	moduleIDs, err := uc.moduleRepo.ListPlanModuleIDs(ctx, planID)
	if err != nil {
		uc.logger.Errorw("failed to list plan modules", "error", err, "plan_id", planID)
		return nil, fmt.Errorf("failed to list plan modules: %w", err)
	}

	return dto.ToPlanDTO(plan, moduleIDs), nil
}
