package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/application/catalog/dto"
	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type CreatePlanCommand struct {
	Code           string
	Name           string
	Description    string
	MonthlyPrice   uint64
	StorageLimitMB int64
	MaxFileSizeMB  int64
	MaxUsers       int
	Metadata       map[string]interface{}
}

type CreatePlanUseCase struct {
	planRepo catalog.PlanRepository
	notifier CatalogChangeNotifier
	logger   logger.Interface
}

func NewCreatePlanUseCase(
	planRepo catalog.PlanRepository,
	notifier CatalogChangeNotifier,
	logger logger.Interface,
) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo: planRepo,
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*dto.PlanDTO, error) {
	existing, err := uc.planRepo.GetByCode(ctx, cmd.Code)
	if err != nil {
		uc.logger.Errorw("failed to check plan code", "error", err, "code", cmd.Code)
		return nil, fmt.Errorf("failed to check plan code: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError(fmt.Sprintf("plan with code %s already exists", cmd.Code))
	}

	plan, err := catalog.NewPlan(cmd.Code, cmd.Name, cmd.Description, cmd.MonthlyPrice,
		cmd.StorageLimitMB, cmd.MaxFileSizeMB, cmd.MaxUsers)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Metadata != nil {
		plan.SetMetadata(cmd.Metadata)
	}

	if err := uc.planRepo.Create(ctx, plan); err != nil {
		uc.logger.Errorw("failed to persist plan", "error", err, "code", cmd.Code)
		return nil, fmt.Errorf("failed to persist plan: %w", err)
	}

	uc.logger.Infow("plan created successfully", "plan_id", plan.ID(), "code", plan.Code())
	notifyCatalogChanged(ctx, uc.notifier, uc.logger, "plan_created")

	return dto.ToPlanDTO(plan, nil), nil
}
