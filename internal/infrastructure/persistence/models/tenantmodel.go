package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/tenantgate/tenantgate/internal/shared/constants"
)

// TenantModel represents the database persistence model for tenants
type TenantModel struct {
	ID              uint       `gorm:"primarykey"`
	PlanID          uint       `gorm:"not null;index"`
	Name            string     `gorm:"not null;size:150"`
	Active          bool       `gorm:"not null;default:true"`
	PaymentStatus   string     `gorm:"not null;size:20;default:active;index"`
	LastPaymentDate *time.Time
	NextPaymentDate *time.Time `gorm:"index"`
	StorageUsedMB   float64    `gorm:"not null;default:0"`
	Metadata        datatypes.JSON
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (TenantModel) TableName() string {
	return constants.TableTenants
}
