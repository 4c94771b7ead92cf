package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/application/catalog/dto"
	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type ListFeaturesUseCase struct {
	moduleRepo  catalog.ModuleRepository
	featureRepo catalog.FeatureRepository
	logger      logger.Interface
}

func NewListFeaturesUseCase(
	moduleRepo catalog.ModuleRepository,
	featureRepo catalog.FeatureRepository,
	logger logger.Interface,
) *ListFeaturesUseCase {
	return &ListFeaturesUseCase{
		moduleRepo:  moduleRepo,
		featureRepo: featureRepo,
		logger:      logger,
	}
}

func (uc *ListFeaturesUseCase) Execute(ctx context.Context, moduleID uint) ([]*dto.FeatureDTO, error) {
	module, err := uc.moduleRepo.GetByID(ctx, moduleID)
	if err != nil {
		uc.logger.Errorw("failed to get module", "error", err, "module_id", moduleID)
		return nil, fmt.Errorf("failed to get module: %w", err)
	}
	if module == nil {
		return nil, errors.NewNotFoundError("module not found")
	}

	features, err := uc.featureRepo.ListByModule(ctx, moduleID)
	if err != nil {
		uc.logger.Errorw("failed to list module features", "error", err, "module_id", moduleID)
		return nil, fmt.Errorf("failed to list module features: %w", err)
	}
	return dto.ToFeatureDTOList(features), nil
}
