// Package storagequota decides whether an upload fits a tenant's plan and records accepted uploads.
package storagequota

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/domain/catalog"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/shared/authorization"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

const bytesPerMB = 1024 * 1024

// BytesToMB converts an upload size to the fractional MB unit the quota is kept in.
func BytesToMB(size int64) float64 {
	return float64(size) / bytesPerMB
}

// Decision describes an evaluated upload. It is returned for rejections too, so callers
// can report the numbers behind the refusal.
type Decision struct {
	TenantID    uint
	PlanCode    string
	FileSizeMB  float64
	FileCapMB   int
	UsedMB      float64
	LimitMB     int64
	RemainingMB float64
	// Bypassed is set for the operator, who is never subject to quota.
	Bypassed bool
}

type Guard struct {
	planRepo   catalog.PlanRepository
	tenantRepo tenant.Repository
	caps       *FileCapTable
	logger     logger.Interface
}

func NewGuard(
	planRepo catalog.PlanRepository,
	tenantRepo tenant.Repository,
	caps *FileCapTable,
	logger logger.Interface,
) *Guard {
	if caps == nil {
		caps = NewFileCapTable(nil)
	}
	return &Guard{
		planRepo:   planRepo,
		tenantRepo: tenantRepo,
		caps:       caps,
		logger:     logger,
	}
}

// CheckUpload runs the quota checks for a file of fileSizeBytes uploaded by actor.
// A nil error means the upload is allowed.
func (g *Guard) CheckUpload(ctx context.Context, actor authorization.Actor, fileSizeBytes int64) (*Decision, error) {
	sizeMB := BytesToMB(fileSizeBytes)
	if actor.IsOperator() {
		return &Decision{FileSizeMB: sizeMB, Bypassed: true}, nil
	}
	if actor.TenantID == 0 {
		return nil, errors.NewForbiddenError("no tenant is associated with this account")
	}

	t, err := g.tenantRepo.GetByID(ctx, actor.TenantID)
	if err != nil {
		g.logger.Errorw("failed to get tenant", "error", err, "tenant_id", actor.TenantID)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if t == nil {
		return nil, errors.NewForbiddenError("tenant not found")
	}

	plan, err := g.planRepo.GetByID(ctx, t.PlanID())
	if err != nil {
		g.logger.Errorw("failed to get plan", "error", err, "plan_id", t.PlanID())
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		g.logger.Warnw("tenant references a missing plan", "tenant_id", t.ID(), "plan_id", t.PlanID())
		return nil, errors.NewForbiddenError("tenant plan not found")
	}

	d := &Decision{
		TenantID:    t.ID(),
		PlanCode:    plan.Code(),
		FileSizeMB:  sizeMB,
		FileCapMB:   g.caps.CapFor(plan.Code()),
		UsedMB:      t.StorageUsedMB(),
		LimitMB:     plan.StorageLimitMB(),
		RemainingMB: t.RemainingStorageMB(plan.StorageLimitMB()),
	}
	if err := Evaluate(d); err != nil {
		g.logger.Infow("upload rejected by storage quota",
			"tenant_id", d.TenantID,
			"plan_code", d.PlanCode,
			"file_size_mb", d.FileSizeMB,
			"used_mb", d.UsedMB,
			"limit_mb", d.LimitMB,
			"reason", err,
		)
		return d, err
	}
	return d, nil
}

// Evaluate applies the quota checks in order: exhausted, per-file cap, would-exceed.
func Evaluate(d *Decision) error {
	limit := float64(d.LimitMB)
	remaining := fmt.Sprintf("remaining_mb=%.2f", d.RemainingMB)

	if d.UsedMB >= limit {
		return errors.NewQuotaExceededError("storage quota exhausted", remaining)
	}
	if d.FileSizeMB > float64(d.FileCapMB) {
		return errors.NewFileTooLargeError(
			fmt.Sprintf("file exceeds the %d MB per-file limit of plan %s", d.FileCapMB, d.PlanCode),
			remaining,
		)
	}
	if d.UsedMB+d.FileSizeMB > limit {
		return errors.NewInsufficientHeadroomError("file would exceed the storage quota", remaining)
	}
	return nil
}
