package usecases

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/application/catalog/dto"
	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type UpdateFeatureCommand struct {
	FeatureID   uint
	FeaturePath *string
	FeatureName *string
	Description *string
}

type UpdateFeatureUseCase struct {
	featureRepo catalog.FeatureRepository
	notifier    CatalogChangeNotifier
	logger      logger.Interface
}

func NewUpdateFeatureUseCase(
	featureRepo catalog.FeatureRepository,
	notifier CatalogChangeNotifier,
	logger logger.Interface,
) *UpdateFeatureUseCase {
	return &UpdateFeatureUseCase{
		featureRepo: featureRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *UpdateFeatureUseCase) Execute(ctx context.Context, cmd UpdateFeatureCommand) (*dto.FeatureDTO, error) {
	feature, err := uc.featureRepo.GetByID(ctx, cmd.FeatureID)
	if err != nil {
		uc.logger.Errorw("failed to get module feature", "error", err, "feature_id", cmd.FeatureID)
		return nil, fmt.Errorf("failed to get module feature: %w", err)
	}
	if feature == nil {
		return nil, errors.NewNotFoundError("module feature not found")
	}

	path, name, description := feature.FeaturePath(), feature.FeatureName(), feature.Description()
	if cmd.FeaturePath != nil {
		path = *cmd.FeaturePath
	}
	if cmd.FeatureName != nil {
		name = *cmd.FeatureName
	}
	if cmd.Description != nil {
		description = *cmd.Description
	}
	if err := feature.Update(path, name, description); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.featureRepo.Update(ctx, feature); err != nil {
		uc.logger.Errorw("failed to update module feature", "error", err, "feature_id", cmd.FeatureID)
		return nil, fmt.Errorf("failed to update module feature: %w", err)
	}

	uc.logger.Infow("module feature updated successfully", "feature_id", feature.ID(), "feature_path", feature.FeaturePath())
	notifyCatalogChanged(ctx, uc.notifier, uc.logger, "feature_updated")

	return dto.ToFeatureDTO(feature), nil
}
