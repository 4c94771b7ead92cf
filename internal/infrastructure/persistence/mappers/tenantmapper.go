package mappers

import (
	"fmt"

	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/infrastructure/persistence/models"
)

type TenantMapper interface {
	ToEntity(model *models.TenantModel) (*tenant.Tenant, error)
	ToModel(entity *tenant.Tenant) (*models.TenantModel, error)
	ToEntities(models []*models.TenantModel) ([]*tenant.Tenant, error)
}

type tenantMapper struct{}

func NewTenantMapper() TenantMapper {
	return &tenantMapper{}
}

func (m *tenantMapper) ToEntity(model *models.TenantModel) (*tenant.Tenant, error) {
	if model == nil {
		return nil, nil
	}

	metadata, err := unmarshalMetadata(model.Metadata)
	if err != nil {
		return nil, err
	}

	entity, err := tenant.ReconstructTenant(
		model.ID,
		model.PlanID,
		model.Name,
		model.Active,
		model.PaymentStatus,
		model.LastPaymentDate,
		model.NextPaymentDate,
		model.StorageUsedMB,
		metadata,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct tenant entity: %w", err)
	}
	return entity, nil
}

func (m *tenantMapper) ToModel(entity *tenant.Tenant) (*models.TenantModel, error) {
	if entity == nil {
		return nil, nil
	}

	metadataJSON, err := marshalMetadata(entity.Metadata())
	if err != nil {
		return nil, err
	}

	return &models.TenantModel{
		ID:              entity.ID(),
		PlanID:          entity.PlanID(),
		Name:            entity.Name(),
		Active:          entity.IsActive(),
		PaymentStatus:   entity.PaymentStatus().String(),
		LastPaymentDate: entity.LastPaymentDate(),
		NextPaymentDate: entity.NextPaymentDate(),
		StorageUsedMB:   entity.StorageUsedMB(),
		Metadata:        metadataJSON,
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}, nil
}

func (m *tenantMapper) ToEntities(tenantModels []*models.TenantModel) ([]*tenant.Tenant, error) {
	entities := make([]*tenant.Tenant, 0, len(tenantModels))
	for _, model := range tenantModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map tenant %d: %w", model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
