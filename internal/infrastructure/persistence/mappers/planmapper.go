package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/infrastructure/persistence/models"
)

// PlanMapper handles the conversion between plan entities and persistence models
type PlanMapper interface {
	ToEntity(model *models.PlanModel) (*catalog.Plan, error)
	ToModel(entity *catalog.Plan) (*models.PlanModel, error)
	ToEntities(models []*models.PlanModel) ([]*catalog.Plan, error)
}

type planMapper struct{}

func NewPlanMapper() PlanMapper {
	return &planMapper{}
}

func (m *planMapper) ToEntity(model *models.PlanModel) (*catalog.Plan, error) {
	if model == nil {
		return nil, nil
	}

	metadata, err := unmarshalMetadata(model.Metadata)
	if err != nil {
		return nil, err
	}

	entity, err := catalog.ReconstructPlan(
		model.ID,
		model.Code,
		model.Name,
		model.Description,
		model.MonthlyPrice,
		model.StorageLimitMB,
		model.MaxFileSizeMB,
		model.MaxUsers,
		metadata,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan entity: %w", err)
	}
	return entity, nil
}

func (m *planMapper) ToModel(entity *catalog.Plan) (*models.PlanModel, error) {
	if entity == nil {
		return nil, nil
	}

	metadataJSON, err := marshalMetadata(entity.Metadata())
	if err != nil {
		return nil, err
	}

	return &models.PlanModel{
		ID:             entity.ID(),
		Code:           entity.Code(),
		Name:           entity.Name(),
		Description:    entity.Description(),
		MonthlyPrice:   entity.MonthlyPrice(),
		StorageLimitMB: entity.StorageLimitMB(),
		MaxFileSizeMB:  entity.MaxFileSizeMB(),
		MaxUsers:       entity.MaxUsers(),
		Metadata:       metadataJSON,
		Version:        entity.Version(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}, nil
}

func (m *planMapper) ToEntities(planModels []*models.PlanModel) ([]*catalog.Plan, error) {
	entities := make([]*catalog.Plan, 0, len(planModels))
	for _, model := range planModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map plan %d: %w", model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func unmarshalMetadata(raw datatypes.JSON) (map[string]interface{}, error) {
	metadata := make(map[string]interface{})
	if len(raw) == 0 {
		return metadata, nil
	}
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return metadata, nil
}

func marshalMetadata(metadata map[string]interface{}) (datatypes.JSON, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return data, nil
}
