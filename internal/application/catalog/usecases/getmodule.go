package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/application/catalog/dto"
	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type GetModuleUseCase struct {
	moduleRepo catalog.ModuleRepository
	logger     logger.Interface
}

func NewGetModuleUseCase(moduleRepo catalog.ModuleRepository, logger logger.Interface) *GetModuleUseCase {
	return &GetModuleUseCase{moduleRepo: moduleRepo, logger: logger}
}

func (uc *GetModuleUseCase) Execute(ctx context.Context, moduleID uint) (*dto.ModuleDTO, error) {
	module, err := uc.moduleRepo.GetByID(ctx, moduleID)
	if err != nil {
		uc.logger.Errorw("failed to get module", "error", err, "module_id", moduleID)
		return nil, fmt.Errorf("failed to get module: %w", err)
	}
	if module == nil {
		return nil, errors.NewNotFoundError("module not found")
	}
	return dto.ToModuleDTO(module), nil
}
