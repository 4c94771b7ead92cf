package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/application/catalog/dto"
	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type CreateFeatureCommand struct {
	ModuleID    uint
	FeaturePath string
	FeatureName string
	Description string
}

type CreateFeatureUseCase struct {
	moduleRepo  catalog.ModuleRepository
	featureRepo catalog.FeatureRepository
	notifier    CatalogChangeNotifier
	logger      logger.Interface
}

func NewCreateFeatureUseCase(
	moduleRepo catalog.ModuleRepository,
	featureRepo catalog.FeatureRepository,
	notifier CatalogChangeNotifier,
	logger logger.Interface,
) *CreateFeatureUseCase {
	return &CreateFeatureUseCase{
		moduleRepo:  moduleRepo,
		featureRepo: featureRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *CreateFeatureUseCase) Execute(ctx context.Context, cmd CreateFeatureCommand) (*dto.FeatureDTO, error) {
	module, err := uc.moduleRepo.GetByID(ctx, cmd.ModuleID)
	if err != nil {
		uc.logger.Errorw("failed to get module", "error", err, "module_id", cmd.ModuleID)
		return nil, fmt.Errorf("failed to get module: %w", err)
	}
	if module == nil {
		return nil, errors.NewNotFoundError("module not found")
	}

	feature, err := catalog.NewModuleFeature(cmd.ModuleID, cmd.FeaturePath, cmd.FeatureName, cmd.Description)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.featureRepo.Create(ctx, feature); err != nil {
		uc.logger.Errorw("failed to persist module feature", "error", err, "module_id", cmd.ModuleID)
		return nil, fmt.Errorf("failed to persist module feature: %w", err)
	}

	uc.logger.Infow("module feature created successfully",
		"feature_id", feature.ID(),
		"module_id", cmd.ModuleID,
		"feature_path", feature.FeaturePath(),
	)
	notifyCatalogChanged(ctx, uc.notifier, uc.logger, "feature_created")

	return dto.ToFeatureDTO(feature), nil
}
