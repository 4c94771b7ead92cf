package models

import (
	"time"

	"github.com/tenantgate/tenantgate/internal/shared/constants"
)

// ModuleModel represents the database persistence model for modules
type ModuleModel struct {
	ID          uint   `gorm:"primarykey"`
	Code        string `gorm:"uniqueIndex;not null;size:50"`
	Name        string `gorm:"not null;size:100"`
	Description string `gorm:"size:500"`
	IsCore      bool   `gorm:"not null;default:false;index"`
	IsActive    bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ModuleModel) TableName() string {
	return constants.TableModules
}

// PlanModuleModel links a plan to a module it grants.
type PlanModuleModel struct {
	PlanID    uint `gorm:"primaryKey;autoIncrement:false"`
	ModuleID  uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}

func (PlanModuleModel) TableName() string {
	return constants.TablePlanModules
}

// ModuleFeatureModel stores a feature path in its raw form, with the trailing wildcard for prefixes.
type ModuleFeatureModel struct {
	ID          uint   `gorm:"primarykey"`
	ModuleID    uint   `gorm:"not null;index"`
	FeaturePath string `gorm:"not null;size:255"`
	FeatureName string `gorm:"not null;size:100"`
	Description string `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ModuleFeatureModel) TableName() string {
	return constants.TableModuleFeatures
}
