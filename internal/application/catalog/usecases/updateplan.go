package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/application/catalog/dto"
	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

// UpdatePlanCommand changes only the fields that are set. The plan code is immutable.
type UpdatePlanCommand struct {
	PlanID         uint
	Name           *string
	Description    *string
	MonthlyPrice   *uint64
	StorageLimitMB *int64
	MaxFileSizeMB  *int64
	MaxUsers       *int
	Metadata       map[string]interface{}
}

type UpdatePlanUseCase struct {
	planRepo   catalog.PlanRepository
	moduleRepo catalog.ModuleRepository
	notifier   CatalogChangeNotifier
	logger     logger.Interface
}

func NewUpdatePlanUseCase(
	planRepo catalog.PlanRepository,
	moduleRepo catalog.ModuleRepository,
	notifier CatalogChangeNotifier,
	logger logger.Interface,
) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{
		planRepo:   planRepo,
		moduleRepo: moduleRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *UpdatePlanUseCase) Execute(ctx context.Context, cmd UpdatePlanCommand) (*dto.PlanDTO, error) {
	plan, err := uc.planRepo.GetByID(ctx, cmd.PlanID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", cmd.PlanID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found")
	}

	if cmd.Name != nil || cmd.Description != nil {
		name, description := plan.Name(), plan.Description()
		if cmd.Name != nil {
			name = *cmd.Name
		}
		if cmd.Description != nil {
			description = *cmd.Description
		}
		if err := plan.UpdateDetails(name, description); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if cmd.MonthlyPrice != nil {
		plan.UpdatePrice(*cmd.MonthlyPrice)
	}

	if cmd.StorageLimitMB != nil || cmd.MaxFileSizeMB != nil || cmd.MaxUsers != nil {
		storage, maxFile, maxUsers := plan.StorageLimitMB(), plan.MaxFileSizeMB(), plan.MaxUsers()
		if cmd.StorageLimitMB != nil {
			storage = *cmd.StorageLimitMB
		}
		if cmd.MaxFileSizeMB != nil {
			maxFile = *cmd.MaxFileSizeMB
		}
		if cmd.MaxUsers != nil {
			maxUsers = *cmd.MaxUsers
		}
		if err := plan.UpdateLimits(storage, maxFile, maxUsers); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if cmd.Metadata != nil {
		plan.SetMetadata(cmd.Metadata)
	}

	if err := uc.planRepo.Update(ctx, plan); err != nil {
		uc.logger.Errorw("failed to update plan", "error", err, "plan_id", cmd.PlanID)
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	uc.logger.Infow("plan updated successfully", "plan_id", plan.ID())
	notifyCatalogChanged(ctx, uc.notifier, uc.logger, "plan_updated")

	moduleIDs, err := uc.moduleRepo.ListPlanModuleIDs(ctx, plan.ID())
	if err != nil {
		uc.logger.Warnw("failed to load plan modules for response", "error", err, "plan_id", plan.ID())
		return dto.ToPlanDTO(plan, nil), nil
	}
	return dto.ToPlanDTO(plan, moduleIDs), nil
}
