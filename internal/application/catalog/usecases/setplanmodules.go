package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/application/catalog/dto"
	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
	"github.com/tenantgate/tenantgate/internal/shared/utils/setutil"
)

type SetPlanModulesCommand struct {
	PlanID    uint
	ModuleIDs []uint
}

// SetPlanModulesUseCase replaces a plan's whole module set. Core modules may be linked
// explicitly but are entitled either way.
type SetPlanModulesUseCase struct {
	planRepo   catalog.PlanRepository
	moduleRepo catalog.ModuleRepository
	txMgr      TransactionRunner
	notifier   CatalogChangeNotifier
	logger     logger.Interface
}

func NewSetPlanModulesUseCase(
	planRepo catalog.PlanRepository,
	moduleRepo catalog.ModuleRepository,
	txMgr TransactionRunner,
	notifier CatalogChangeNotifier,
	logger logger.Interface,
) *SetPlanModulesUseCase {
	return &SetPlanModulesUseCase{
		planRepo:   planRepo,
		moduleRepo: moduleRepo,
		txMgr:      txMgr,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *SetPlanModulesUseCase) Execute(ctx context.Context, cmd SetPlanModulesCommand) (*dto.PlanDTO, error) {
	ids := setutil.NewUintSet(cmd.ModuleIDs...).Sorted()

	var plan *catalog.Plan
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		plan, err = uc.planRepo.GetByID(txCtx, cmd.PlanID)
		if err != nil {
			uc.logger.Errorw("failed to get plan", "error", err, "plan_id", cmd.PlanID)
			return fmt.Errorf("failed to get plan: %w", err)
		}
		if plan == nil {
			return errors.NewNotFoundError("plan not found")
		}

		if len(ids) > 0 {
			modules, err := uc.moduleRepo.ListByIDs(txCtx, ids)
			if err != nil {
				uc.logger.Errorw("failed to load modules", "error", err, "module_ids", ids)
				return fmt.Errorf("failed to load modules: %w", err)
			}
			if missing := missingModuleIDs(ids, modules); len(missing) > 0 {
				return errors.NewNotFoundError("module not found", fmt.Sprintf("module_ids=%v", missing))
			}
		}

		if err := uc.moduleRepo.ReplacePlanModules(txCtx, cmd.PlanID, ids); err != nil {
			uc.logger.Errorw("failed to replace plan modules", "error", err, "plan_id", cmd.PlanID)
			return fmt.Errorf("failed to replace plan modules: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("plan modules replaced", "plan_id", cmd.PlanID, "module_ids", ids)
	notifyCatalogChanged(ctx, uc.notifier, uc.logger, "plan_modules_replaced")

	return dto.ToPlanDTO(plan, ids), nil
}

func missingModuleIDs(want []uint, found []*catalog.Module) []uint {
	got := setutil.NewUintSet()
	for _, m := range found {
		got.Add(m.ID())
	}
	var missing []uint
	for _, id := range want {
		if !got.Has(id) {
			missing = append(missing, id)
		}
	}
	return missing
}
