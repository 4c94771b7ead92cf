package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/application/catalog/dto"
	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type ListPlansUseCase struct {
	planRepo   catalog.PlanRepository
	moduleRepo catalog.ModuleRepository
	logger     logger.Interface
}

func NewListPlansUseCase(
	planRepo catalog.PlanRepository,
	moduleRepo catalog.ModuleRepository,
	logger logger.Interface,
) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo:   planRepo,
		moduleRepo: moduleRepo,
		logger:     logger,
	}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context) ([]*dto.PlanDTO, error) {
	plans, err := uc.planRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	result := make([]*dto.PlanDTO, 0, len(plans))
	for _, plan := range plans {
		moduleIDs, err := uc.moduleRepo.ListPlanModuleIDs(ctx, plan.ID())
		if err != nil {
			uc.logger.Errorw("failed to list plan modules", "error", err, "plan_id", plan.ID())
			return nil, fmt.Errorf("failed to list plan modules: %w", err)
		}
		result = append(result, dto.ToPlanDTO(plan, moduleIDs))
	}
	return result, nil
}
