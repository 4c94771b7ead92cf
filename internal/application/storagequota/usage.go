package storagequota

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/shared/errors"
)

// Usage is a tenant's storage position under its plan.
type Usage struct {
	TenantID    uint    `json:"tenant_id"`
	PlanCode    string  `json:"plan_code"`
	UsedMB      float64 `json:"used_mb"`
	LimitMB     int64   `json:"limit_mb"`
	RemainingMB float64 `json:"remaining_mb"`
	FileCapMB   int     `json:"file_cap_mb"`
}

// GetUsage reads the storage position of tenantID.
func (g *Guard) GetUsage(ctx context.Context, tenantID uint) (*Usage, error) {
	t, err := g.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		g.logger.Errorw("failed to get tenant", "error", err, "tenant_id", tenantID)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if t == nil {
		return nil, errors.NewNotFoundError("tenant not found")
	}

	plan, err := g.planRepo.GetByID(ctx, t.PlanID())
	if err != nil {
		g.logger.Errorw("failed to get plan", "error", err, "plan_id", t.PlanID())
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found")
	}

	return &Usage{
		TenantID:    t.ID(),
		PlanCode:    plan.Code(),
		UsedMB:      t.StorageUsedMB(),
		LimitMB:     plan.StorageLimitMB(),
		RemainingMB: t.RemainingStorageMB(plan.StorageLimitMB()),
		FileCapMB:   g.caps.CapFor(plan.Code()),
	}, nil
}
