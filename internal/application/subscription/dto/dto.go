// Package dto holds the tenant and subscription read models.
package dto

import (
	"time"

	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
)

type TenantDTO struct {
	ID              uint                   `json:"id"`
	PlanID          uint                   `json:"plan_id"`
	Name            string                 `json:"name"`
	Active          bool                   `json:"active"`
	PaymentStatus   string                 `json:"payment_status"`
	LastPaymentDate *time.Time             `json:"last_payment_date"`
	NextPaymentDate *time.Time             `json:"next_payment_date"`
	StorageUsedMB   float64                `json:"storage_used_mb"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// SubscriptionSummaryDTO is the computed subscription view of one tenant.
// DaysToExpiration is nil when no next payment date is set and negative once it has passed.
type SubscriptionSummaryDTO struct {
	TenantID           uint       `json:"tenant_id"`
	PlanID             uint       `json:"plan_id"`
	PlanCode           string     `json:"plan_code"`
	PlanName           string     `json:"plan_name"`
	PaymentStatus      string     `json:"payment_status"`
	Active             bool       `json:"active"`
	IsBlocked          bool       `json:"is_blocked"`
	LastPaymentDate    *time.Time `json:"last_payment_date"`
	NextPaymentDate    *time.Time `json:"next_payment_date"`
	DaysToExpiration   *int       `json:"days_to_expiration"`
	StorageUsedMB      float64    `json:"storage_used_mb"`
	StorageLimitMB     int64      `json:"storage_limit_mb"`
	StorageRemainingMB float64    `json:"storage_remaining_mb"`
}

// SweepResultDTO reports one sweep run.
type SweepResultDTO struct {
	Scanned int  `json:"scanned"`
	Overdue int  `json:"overdue"`
	Pending int  `json:"pending"`
	Failed  int  `json:"failed"`
	Skipped bool `json:"skipped"`
}

// Updated is the number of tenants whose payment status changed.
func (r *SweepResultDTO) Updated() int {
	return r.Overdue + r.Pending
}

func ToTenantDTO(t *tenant.Tenant) *TenantDTO {
	if t == nil {
		return nil
	}
	return &TenantDTO{
		ID:              t.ID(),
		PlanID:          t.PlanID(),
		Name:            t.Name(),
		Active:          t.IsActive(),
		PaymentStatus:   t.PaymentStatus().String(),
		LastPaymentDate: t.LastPaymentDate(),
		NextPaymentDate: t.NextPaymentDate(),
		StorageUsedMB:   t.StorageUsedMB(),
		Metadata:        t.Metadata(),
		CreatedAt:       t.CreatedAt(),
		UpdatedAt:       t.UpdatedAt(),
	}
}

func ToTenantDTOList(tenants []*tenant.Tenant) []*TenantDTO {
	dtos := make([]*TenantDTO, 0, len(tenants))
	for _, t := range tenants {
		if t != nil {
			dtos = append(dtos, ToTenantDTO(t))
		}
	}
	return dtos
}

// ToSubscriptionSummaryDTO builds the summary at now. plan may be nil when the tenant
// references a plan that no longer exists.
func ToSubscriptionSummaryDTO(t *tenant.Tenant, plan *catalog.Plan, now time.Time) *SubscriptionSummaryDTO {
	if t == nil {
		return nil
	}
	summary := &SubscriptionSummaryDTO{
		TenantID:         t.ID(),
		PlanID:           t.PlanID(),
		PaymentStatus:    t.PaymentStatus().String(),
		Active:           t.IsActive(),
		IsBlocked:        t.IsOverdue(),
		LastPaymentDate:  t.LastPaymentDate(),
		NextPaymentDate:  t.NextPaymentDate(),
		DaysToExpiration: t.DaysToExpiration(now),
		StorageUsedMB:    t.StorageUsedMB(),
	}
	if plan != nil {
		summary.PlanCode = plan.Code()
		summary.PlanName = plan.Name()
		summary.StorageLimitMB = plan.StorageLimitMB()
		summary.StorageRemainingMB = t.RemainingStorageMB(plan.StorageLimitMB())
	}
	return summary
}
