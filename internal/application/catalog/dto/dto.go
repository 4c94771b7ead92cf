// Package dto holds the catalog read models returned to the HTTP layer.
package dto

import (
	"time"

	"github.com/tenantgate/tenantgate/internal/domain/catalog"
)

type PlanDTO struct {
	ID             uint                   `json:"id"`
	Code           string                 `json:"code"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	MonthlyPrice   uint64                 `json:"monthly_price"`
	StorageLimitMB int64                  `json:"storage_limit_mb"`
	MaxFileSizeMB  int64                  `json:"max_file_size_mb"`
	MaxUsers       int                    `json:"max_users"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	ModuleIDs      []uint                 `json:"module_ids"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

type ModuleDTO struct {
	ID          uint      `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsCore      bool      `json:"is_core"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type FeatureDTO struct {
	ID          uint      `json:"id"`
	ModuleID    uint      `json:"module_id"`
	FeaturePath string    `json:"feature_path"`
	MatchKind   string    `json:"match_kind"`
	FeatureName string    `json:"feature_name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToPlanDTO converts a plan. moduleIDs may be nil when the links were not loaded.
func ToPlanDTO(plan *catalog.Plan, moduleIDs []uint) *PlanDTO {
	if plan == nil {
		return nil
	}
	if moduleIDs == nil {
		moduleIDs = []uint{}
	}
	return &PlanDTO{
		ID:             plan.ID(),
		Code:           plan.Code(),
		Name:           plan.Name(),
		Description:    plan.Description(),
		MonthlyPrice:   plan.MonthlyPrice(),
		StorageLimitMB: plan.StorageLimitMB(),
		MaxFileSizeMB:  plan.MaxFileSizeMB(),
		MaxUsers:       plan.MaxUsers(),
		Metadata:       plan.Metadata(),
		ModuleIDs:      moduleIDs,
		CreatedAt:      plan.CreatedAt(),
		UpdatedAt:      plan.UpdatedAt(),
	}
}

func ToModuleDTO(m *catalog.Module) *ModuleDTO {
	if m == nil {
		return nil
	}
	return &ModuleDTO{
		ID:          m.ID(),
		Code:        m.Code(),
		Name:        m.Name(),
		Description: m.Description(),
		IsCore:      m.IsCore(),
		IsActive:    m.IsActive(),
		CreatedAt:   m.CreatedAt(),
		UpdatedAt:   m.UpdatedAt(),
	}
}

func ToModuleDTOList(modules []*catalog.Module) []*ModuleDTO {
	dtos := make([]*ModuleDTO, 0, len(modules))
	for _, m := range modules {
		if m != nil {
			dtos = append(dtos, ToModuleDTO(m))
		}
	}
	return dtos
}

func ToFeatureDTO(f *catalog.ModuleFeature) *FeatureDTO {
	if f == nil {
		return nil
	}
	return &FeatureDTO{
		ID:          f.ID(),
		ModuleID:    f.ModuleID(),
		FeaturePath: f.FeaturePath(),
		MatchKind:   f.Pattern().Kind().String(),
		FeatureName: f.FeatureName(),
		Description: f.Description(),
		CreatedAt:   f.CreatedAt(),
		UpdatedAt:   f.UpdatedAt(),
	}
}

func ToFeatureDTOList(features []*catalog.ModuleFeature) []*FeatureDTO {
	dtos := make([]*FeatureDTO, 0, len(features))
	for _, f := range features {
		if f != nil {
			dtos = append(dtos, ToFeatureDTO(f))
		}
	}
	return dtos
}
