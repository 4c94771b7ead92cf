package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type DeleteModuleUseCase struct {
	moduleRepo catalog.ModuleRepository
	notifier   CatalogChangeNotifier
	logger     logger.Interface
}

func NewDeleteModuleUseCase(
	moduleRepo catalog.ModuleRepository,
	notifier CatalogChangeNotifier,
	logger logger.Interface,
) *DeleteModuleUseCase {
	return &DeleteModuleUseCase{
		moduleRepo: moduleRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// Execute removes the module together with its plan links and features.
func (uc *DeleteModuleUseCase) Execute(ctx context.Context, moduleID uint) error {
	module, err := uc.moduleRepo.GetByID(ctx, moduleID)
	if err != nil {
		uc.logger.Errorw("failed to get module", "error", err, "module_id", moduleID)
		return fmt.Errorf("failed to get module: %w", err)
	}
	if module == nil {
		return errors.NewNotFoundError("module not found")
	}

	if err := uc.moduleRepo.Delete(ctx, moduleID); err != nil {
		uc.logger.Errorw("failed to delete module", "error", err, "module_id", moduleID)
		return fmt.Errorf("failed to delete module: %w", err)
	}

	uc.logger.Infow("module deleted successfully", "module_id", moduleID, "code", module.Code())
	notifyCatalogChanged(ctx, uc.notifier, uc.logger, "module_deleted")
	return nil
}
