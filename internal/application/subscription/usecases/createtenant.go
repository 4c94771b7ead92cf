package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tenantgate/tenantgate/internal/application/subscription/dto"
	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/shared/biztime"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type CreateTenantCommand struct {
	Name            string
	PlanID          uint
	NextPaymentDate string
	Active          *bool
}

type CreateTenantUseCase struct {
	tenantRepo tenant.Repository
	planRepo   catalog.PlanRepository
	logger     logger.Interface
}

func NewCreateTenantUseCase(
	tenantRepo tenant.Repository,
	planRepo catalog.PlanRepository,
	logger logger.Interface,
) *CreateTenantUseCase {
	return &CreateTenantUseCase{
		tenantRepo: tenantRepo,
		planRepo:   planRepo,
		logger:     logger,
	}
}

func (uc *CreateTenantUseCase) Execute(ctx context.Context, cmd CreateTenantCommand) (*dto.TenantDTO, error) {
	if err := ensurePlanExists(ctx, uc.planRepo, uc.logger, cmd.PlanID); err != nil {
		return nil, err
	}

	var next *time.Time
	if raw := strings.TrimSpace(cmd.NextPaymentDate); raw != "" {
		parsed, err := biztime.ParseFlexible(raw)
		if err != nil {
			return nil, errors.NewValidationError("invalid next payment date", err.Error())
		}
		next = &parsed
	}

	t, err := tenant.NewTenant(cmd.Name, cmd.PlanID, next)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Active != nil {
		t.SetActive(*cmd.Active)
	}

	if err := uc.tenantRepo.Create(ctx, t); err != nil {
		uc.logger.Errorw("failed to persist tenant", "error", err, "plan_id", cmd.PlanID)
		return nil, fmt.Errorf("failed to persist tenant: %w", err)
	}

	uc.logger.Infow("tenant created successfully", "tenant_id", t.ID(), "plan_id", t.PlanID())
	return dto.ToTenantDTO(t), nil
}

func ensurePlanExists(ctx context.Context, planRepo catalog.PlanRepository, log logger.Interface, planID uint) error {
	if planID == 0 {
		return errors.NewValidationError("plan_id is required")
	}
	plan, err := planRepo.GetByID(ctx, planID)
	if err != nil {
		log.Errorw("failed to get plan", "error", err, "plan_id", planID)
		return fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return errors.NewNotFoundError("plan not found")
	}
	return nil
}
