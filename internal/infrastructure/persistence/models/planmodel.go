package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/tenantgate/tenantgate/internal/shared/constants"
)

// PlanModel represents the database persistence model for plans
// This is the anti-corruption layer between domain and database
type PlanModel struct {
	ID             uint   `gorm:"primarykey"`
	Code           string `gorm:"uniqueIndex;not null;size:50"`
	Name           string `gorm:"not null;size:100"`
	Description    string `gorm:"size:500"`
	MonthlyPrice   uint64 `gorm:"not null;default:0"`
	StorageLimitMB int64  `gorm:"not null;default:0"`
	MaxFileSizeMB  int64  `gorm:"not null;default:0"`
	MaxUsers       int    `gorm:"not null;default:0"`
	Metadata       datatypes.JSON
	Version        int `gorm:"not null;default:1"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (PlanModel) TableName() string {
	return constants.TablePlans
}
