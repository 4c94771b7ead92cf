package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/application/catalog/dto"
	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type UpdateModuleCommand struct {
	ModuleID    uint
	Name        *string
	Description *string
	IsCore      *bool
	IsActive    *bool
}

type UpdateModuleUseCase struct {
	moduleRepo catalog.ModuleRepository
	notifier   CatalogChangeNotifier
	logger     logger.Interface
}

func NewUpdateModuleUseCase(
	moduleRepo catalog.ModuleRepository,
	notifier CatalogChangeNotifier,
	logger logger.Interface,
) *UpdateModuleUseCase {
	return &UpdateModuleUseCase{
		moduleRepo: moduleRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *UpdateModuleUseCase) Execute(ctx context.Context, cmd UpdateModuleCommand) (*dto.ModuleDTO, error) {
	module, err := uc.moduleRepo.GetByID(ctx, cmd.ModuleID)
	if err != nil {
		uc.logger.Errorw("failed to get module", "error", err, "module_id", cmd.ModuleID)
		return nil, fmt.Errorf("failed to get module: %w", err)
	}
	if module == nil {
		return nil, errors.NewNotFoundError("module not found")
	}

	if cmd.Name != nil || cmd.Description != nil {
		name, description := module.Name(), module.Description()
		if cmd.Name != nil {
			name = *cmd.Name
		}
		if cmd.Description != nil {
			description = *cmd.Description
		}
		if err := module.UpdateDetails(name, description); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.IsCore != nil {
		module.SetCore(*cmd.IsCore)
	}
	if cmd.IsActive != nil {
		module.SetActive(*cmd.IsActive)
	}

	if err := uc.moduleRepo.Update(ctx, module); err != nil {
		uc.logger.Errorw("failed to update module", "error", err, "module_id", cmd.ModuleID)
		return nil, fmt.Errorf("failed to update module: %w", err)
	}

	uc.logger.Infow("module updated successfully", "module_id", module.ID())
	notifyCatalogChanged(ctx, uc.notifier, uc.logger, "module_updated")

	return dto.ToModuleDTO(module), nil
}
