package mappers

import (
	"fmt"

	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/infrastructure/persistence/models"
)

type ModuleMapper interface {
	ToEntity(model *models.ModuleModel) (*catalog.Module, error)
	ToModel(entity *catalog.Module) *models.ModuleModel
	ToEntities(models []*models.ModuleModel) ([]*catalog.Module, error)
}

type moduleMapper struct{}

func NewModuleMapper() ModuleMapper {
	return &moduleMapper{}
}

func (m *moduleMapper) ToEntity(model *models.ModuleModel) (*catalog.Module, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := catalog.ReconstructModule(
		model.ID,
		model.Code,
		model.Name,
		model.Description,
		model.IsCore,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct module entity: %w", err)
	}
	return entity, nil
}

func (m *moduleMapper) ToModel(entity *catalog.Module) *models.ModuleModel {
	if entity == nil {
		return nil
	}
	return &models.ModuleModel{
		ID:          entity.ID(),
		Code:        entity.Code(),
		Name:        entity.Name(),
		Description: entity.Description(),
		IsCore:      entity.IsCore(),
		IsActive:    entity.IsActive(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func (m *moduleMapper) ToEntities(moduleModels []*models.ModuleModel) ([]*catalog.Module, error) {
	entities := make([]*catalog.Module, 0, len(moduleModels))
	for _, model := range moduleModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

type FeatureMapper interface {
	ToEntity(model *models.ModuleFeatureModel) (*catalog.ModuleFeature, error)
	ToModel(entity *catalog.ModuleFeature) *models.ModuleFeatureModel
	ToEntities(models []*models.ModuleFeatureModel) ([]*catalog.ModuleFeature, error)
}

type featureMapper struct{}

func NewFeatureMapper() FeatureMapper {
	return &featureMapper{}
}

func (m *featureMapper) ToEntity(model *models.ModuleFeatureModel) (*catalog.ModuleFeature, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := catalog.ReconstructModuleFeature(
		model.ID,
		model.ModuleID,
		model.FeaturePath,
		model.FeatureName,
		model.Description,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct feature %d: %w", model.ID, err)
	}
	return entity, nil
}

func (m *featureMapper) ToModel(entity *catalog.ModuleFeature) *models.ModuleFeatureModel {
	if entity == nil {
		return nil
	}
	return &models.ModuleFeatureModel{
		ID:          entity.ID(),
		ModuleID:    entity.ModuleID(),
		FeaturePath: entity.FeaturePath(),
		FeatureName: entity.FeatureName(),
		Description: entity.Description(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func (m *featureMapper) ToEntities(featureModels []*models.ModuleFeatureModel) ([]*catalog.ModuleFeature, error) {
	entities := make([]*catalog.ModuleFeature, 0, len(featureModels))
	for _, model := range featureModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
