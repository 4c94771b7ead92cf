package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/application/subscription/dto"
	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/shared/biztime"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type GetSubscriptionSummaryUseCase struct {
	tenantRepo tenant.Repository
	planRepo   catalog.PlanRepository
	clock      Clock
	logger     logger.Interface
}

func NewGetSubscriptionSummaryUseCase(
	tenantRepo tenant.Repository,
	planRepo catalog.PlanRepository,
	logger logger.Interface,
) *GetSubscriptionSummaryUseCase {
	return &GetSubscriptionSummaryUseCase{
		tenantRepo: tenantRepo,
		planRepo:   planRepo,
		clock:      biztime.NowUTC,
		logger:     logger,
	}
}

func (uc *GetSubscriptionSummaryUseCase) SetClock(clock Clock) {
	uc.clock = clock
}

func (uc *GetSubscriptionSummaryUseCase) Execute(ctx context.Context, tenantID uint) (*dto.SubscriptionSummaryDTO, error) {
	t, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		uc.logger.Errorw("failed to get tenant", "error", err, "tenant_id", tenantID)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if t == nil {
		return nil, errors.NewNotFoundError("tenant not found")
	}

	plan, err := uc.planRepo.GetByID(ctx, t.PlanID())
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", t.PlanID())
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		uc.logger.Warnw("tenant references a missing plan", "tenant_id", tenantID, "plan_id", t.PlanID())
	}

	return dto.ToSubscriptionSummaryDTO(t, plan, uc.clock()), nil
}
