package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/infrastructure/persistence/mappers"
	"github.com/tenantgate/tenantgate/internal/infrastructure/persistence/models"
	"github.com/tenantgate/tenantgate/internal/shared/db"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type FeatureRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.FeatureMapper
	logger logger.Interface
}

func NewFeatureRepository(db *gorm.DB, logger logger.Interface) catalog.FeatureRepository {
	return &FeatureRepositoryImpl{
		db:     db,
		mapper: mappers.NewFeatureMapper(),
		logger: logger,
	}
}

func (r *FeatureRepositoryImpl) Create(ctx context.Context, feature *catalog.ModuleFeature) error {
	model := r.mapper.ToModel(feature)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create module feature", "error", err, "module_id", feature.ModuleID())
		return fmt.Errorf("failed to create module feature: %w", err)
	}
	return feature.SetID(model.ID)
}

func (r *FeatureRepositoryImpl) Update(ctx context.Context, feature *catalog.ModuleFeature) error {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.ModuleFeatureModel{}).
		Where("id = ?", feature.ID()).
		Updates(map[string]interface{}{
			"feature_path": feature.FeaturePath(),
			"feature_name": feature.FeatureName(),
			"description":  feature.Description(),
			"updated_at":   feature.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update module feature", "error", result.Error, "feature_id", feature.ID())
		return fmt.Errorf("failed to update module feature: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("module feature not found")
	}
	return nil
}

func (r *FeatureRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.ModuleFeatureModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete module feature", "error", result.Error, "feature_id", id)
		return fmt.Errorf("failed to delete module feature: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("module feature not found")
	}
	return nil
}

func (r *FeatureRepositoryImpl) GetByID(ctx context.Context, id uint) (*catalog.ModuleFeature, error) {
	var model models.ModuleFeatureModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get module feature", "error", err, "feature_id", id)
		return nil, fmt.Errorf("failed to get module feature: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *FeatureRepositoryImpl) ListByModule(ctx context.Context, moduleID uint) ([]*catalog.ModuleFeature, error) {
	return r.ListByModules(ctx, []uint{moduleID})
}

func (r *FeatureRepositoryImpl) ListByModules(ctx context.Context, moduleIDs []uint) ([]*catalog.ModuleFeature, error) {
	if len(moduleIDs) == 0 {
		return []*catalog.ModuleFeature{}, nil
	}

	var featureModels []*models.ModuleFeatureModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("module_id IN ?", moduleIDs).
		Order("id ASC").
		Find(&featureModels).Error
	if err != nil {
		r.logger.Errorw("failed to list module features", "error", err, "module_ids", moduleIDs)
		return nil, fmt.Errorf("failed to list module features: %w", err)
	}
	return r.mapper.ToEntities(featureModels)
}
