package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/application/catalog/dto"
	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type ListModulesUseCase struct {
	moduleRepo catalog.ModuleRepository
	logger     logger.Interface
}

func NewListModulesUseCase(moduleRepo catalog.ModuleRepository, logger logger.Interface) *ListModulesUseCase {
	return &ListModulesUseCase{moduleRepo: moduleRepo, logger: logger}
}

func (uc *ListModulesUseCase) Execute(ctx context.Context) ([]*dto.ModuleDTO, error) {
	modules, err := uc.moduleRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list modules", "error", err)
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	return dto.ToModuleDTOList(modules), nil
}
