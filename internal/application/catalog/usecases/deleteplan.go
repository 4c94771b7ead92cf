package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type DeletePlanUseCase struct {
	planRepo   catalog.PlanRepository
	tenantRepo tenant.Repository
	txMgr      TransactionRunner
	notifier   CatalogChangeNotifier
	logger     logger.Interface
}

func NewDeletePlanUseCase(
	planRepo catalog.PlanRepository,
	tenantRepo tenant.Repository,
	txMgr TransactionRunner,
	notifier CatalogChangeNotifier,
	logger logger.Interface,
) *DeletePlanUseCase {
	return &DeletePlanUseCase{
		planRepo:   planRepo,
		tenantRepo: tenantRepo,
		txMgr:      txMgr,
		notifier:   notifier,
		logger:     logger,
	}
}

// Execute deletes the plan and its module links. Plans still referenced by a tenant are kept.
func (uc *DeletePlanUseCase) Execute(ctx context.Context, planID uint) error {
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		plan, err := uc.planRepo.GetByID(txCtx, planID)
		if err != nil {
			uc.logger.Errorw("failed to get plan", "error", err, "plan_id", planID)
			return fmt.Errorf("failed to get plan: %w", err)
		}
		if plan == nil {
			return errors.NewNotFoundError("plan not found")
		}

		count, err := uc.tenantRepo.CountByPlan(txCtx, planID)
		if err != nil {
			uc.logger.Errorw("failed to count plan tenants", "error", err, "plan_id", planID)
			return fmt.Errorf("failed to check plan usage: %w", err)
		}
		if count > 0 {
			return errors.NewConflictError(
				fmt.Sprintf("cannot delete plan: %d tenants are using this plan", count),
				catalog.ErrPlanInUse.Error(),
			)
		}

		if err := uc.planRepo.Delete(txCtx, planID); err != nil {
			uc.logger.Errorw("failed to delete plan", "error", err, "plan_id", planID)
			return fmt.Errorf("failed to delete plan: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.logger.Infow("plan deleted successfully", "plan_id", planID)
	notifyCatalogChanged(ctx, uc.notifier, uc.logger, "plan_deleted")
	return nil
}
