package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/application/catalog/dto"
	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type CreateModuleCommand struct {
	Code        string
	Name        string
	Description string
	IsCore      bool
}

type CreateModuleUseCase struct {
	moduleRepo catalog.ModuleRepository
	notifier   CatalogChangeNotifier
	logger     logger.Interface
}

func NewCreateModuleUseCase(
	moduleRepo catalog.ModuleRepository,
	notifier CatalogChangeNotifier,
	logger logger.Interface,
) *CreateModuleUseCase {
	return &CreateModuleUseCase{
		moduleRepo: moduleRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *CreateModuleUseCase) Execute(ctx context.Context, cmd CreateModuleCommand) (*dto.ModuleDTO, error) {
	existing, err := uc.moduleRepo.GetByCode(ctx, cmd.Code)
	if err != nil {
		uc.logger.Errorw("failed to check module code", "error", err, "code", cmd.Code)
		return nil, fmt.Errorf("failed to check module code: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError(fmt.Sprintf("module with code %s already exists", cmd.Code))
	}

	module, err := catalog.NewModule(cmd.Code, cmd.Name, cmd.Description, cmd.IsCore)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.moduleRepo.Create(ctx, module); err != nil {
		uc.logger.Errorw("failed to persist module", "error", err, "code", cmd.Code)
		return nil, fmt.Errorf("failed to persist module: %w", err)
	}

	uc.logger.Infow("module created successfully", "module_id", module.ID(), "code", module.Code(), "is_core", module.IsCore())
	notifyCatalogChanged(ctx, uc.notifier, uc.logger, "module_created")

	return dto.ToModuleDTO(module), nil
}
