package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/application/subscription/dto"
	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type ChangeTenantPlanCommand struct {
	TenantID uint
	PlanID   uint
}

// ChangeTenantPlanUseCase moves a tenant to another plan. Payment status and stored usage are kept.
type ChangeTenantPlanUseCase struct {
	tenantRepo tenant.Repository
	planRepo   catalog.PlanRepository
	logger     logger.Interface
}

func NewChangeTenantPlanUseCase(
	tenantRepo tenant.Repository,
	planRepo catalog.PlanRepository,
	logger logger.Interface,
) *ChangeTenantPlanUseCase {
	return &ChangeTenantPlanUseCase{
		tenantRepo: tenantRepo,
		planRepo:   planRepo,
		logger:     logger,
	}
}

func (uc *ChangeTenantPlanUseCase) Execute(ctx context.Context, cmd ChangeTenantPlanCommand) (*dto.TenantDTO, error) {
	t, err := uc.tenantRepo.GetByID(ctx, cmd.TenantID)
	if err != nil {
		uc.logger.Errorw("failed to get tenant", "error", err, "tenant_id", cmd.TenantID)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if t == nil {
		return nil, errors.NewNotFoundError("tenant not found")
	}
	if err := ensurePlanExists(ctx, uc.planRepo, uc.logger, cmd.PlanID); err != nil {
		return nil, err
	}

	previous := t.PlanID()
	if err := t.ChangePlan(cmd.PlanID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.tenantRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update tenant", "error", err, "tenant_id", cmd.TenantID)
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}

	uc.logger.Infow("tenant plan changed", "tenant_id", t.ID(), "from_plan_id", previous, "to_plan_id", t.PlanID())
	return dto.ToTenantDTO(t), nil
}
