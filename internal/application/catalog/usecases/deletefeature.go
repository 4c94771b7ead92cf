package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type DeleteFeatureUseCase struct {
	featureRepo catalog.FeatureRepository
	notifier    CatalogChangeNotifier
	logger      logger.Interface
}

func NewDeleteFeatureUseCase(
	featureRepo catalog.FeatureRepository,
	notifier CatalogChangeNotifier,
	logger logger.Interface,
) *DeleteFeatureUseCase {
	return &DeleteFeatureUseCase{
		featureRepo: featureRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *DeleteFeatureUseCase) Execute(ctx context.Context, featureID uint) error {
	feature, err := uc.featureRepo.GetByID(ctx, featureID)
	if err != nil {
		uc.logger.Errorw("failed to get module feature", "error", err, "feature_id", featureID)
		return fmt.Errorf("failed to get module feature: %w", err)
	}
	if feature == nil {
		return errors.NewNotFoundError("module feature not found")
	}

	if err := uc.featureRepo.Delete(ctx, featureID); err != nil {
		uc.logger.Errorw("failed to delete module feature", "error", err, "feature_id", featureID)
		return fmt.Errorf("failed to delete module feature: %w", err)
	}

	uc.logger.Infow("module feature deleted successfully", "feature_id", featureID, "module_id", feature.ModuleID())
	notifyCatalogChanged(ctx, uc.notifier, uc.logger, "feature_deleted")
	return nil
}
