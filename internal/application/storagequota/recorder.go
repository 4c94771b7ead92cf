package storagequota

import (
	"context"
	"fmt"

	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

// Recorder adds accepted uploads to the tenant's storage counter.
type Recorder struct {
	tenantRepo tenant.Repository
	logger     logger.Interface
}

func NewRecorder(tenantRepo tenant.Repository, logger logger.Interface) *Recorder {
	return &Recorder{
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

// Record adds sizeMB to the tenant's usage in a single atomic update and returns the new total.
func (r *Recorder) Record(ctx context.Context, tenantID uint, sizeMB float64) (float64, error) {
	if tenantID == 0 || sizeMB <= 0 {
		return 0, nil
	}

	used, err := r.tenantRepo.IncrementStorageUsed(ctx, tenantID, sizeMB)
	if err != nil {
		r.logger.Errorw("failed to record storage usage",
			"error", err,
			"tenant_id", tenantID,
			"size_mb", sizeMB,
		)
		return 0, fmt.Errorf("failed to record storage usage: %w", err)
	}

	r.logger.Debugw("storage usage recorded", "tenant_id", tenantID, "size_mb", sizeMB, "used_mb", used)
	return used, nil
}
