package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/tenantgate/tenantgate/internal/application/subscription/dto"
	"github.com/tenantgate/tenantgate/internal/domain/tenant"
	"github.com/tenantgate/tenantgate/internal/shared/biztime"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

const defaultSweepBatchSize = 200

// SweepSubscriptionsUseCase reconciles payment statuses with the calendar.
// Each tenant is evaluated on its own; a failing tenant is logged and skipped.
type SweepSubscriptionsUseCase struct {
	tenantRepo tenant.Repository
	windowDays int
	batchSize  int
	locker     SweepLocker
	clock      Clock
	logger     logger.Interface
}

func NewSweepSubscriptionsUseCase(
	tenantRepo tenant.Repository,
	windowDays int,
	logger logger.Interface,
) *SweepSubscriptionsUseCase {
	if windowDays < 0 {
		windowDays = tenant.DefaultPendingWindowDays
	}
	return &SweepSubscriptionsUseCase{
		tenantRepo: tenantRepo,
		windowDays: windowDays,
		batchSize:  defaultSweepBatchSize,
		clock:      biztime.NowUTC,
		logger:     logger,
	}
}

// SetLocker enables cross-instance exclusivity (optional).
func (uc *SweepSubscriptionsUseCase) SetLocker(locker SweepLocker) {
	uc.locker = locker
}

func (uc *SweepSubscriptionsUseCase) SetClock(clock Clock) {
	uc.clock = clock
}

func (uc *SweepSubscriptionsUseCase) SetBatchSize(size int) {
	if size > 0 {
		uc.batchSize = size
	}
}

// Execute runs one sweep and returns the number of tenants updated.
func (uc *SweepSubscriptionsUseCase) Execute(ctx context.Context) (int, error) {
	result, err := uc.Run(ctx)
	if err != nil {
		return 0, err
	}
	return result.Updated(), nil
}

// Run runs one sweep and reports per-transition counts.
func (uc *SweepSubscriptionsUseCase) Run(ctx context.Context) (*dto.SweepResultDTO, error) {
	result := &dto.SweepResultDTO{}

	if uc.locker != nil {
		release, acquired, err := uc.locker.TryLock(ctx)
		if err != nil {
			uc.logger.Errorw("failed to acquire sweep lock", "error", err)
			return nil, fmt.Errorf("failed to acquire sweep lock: %w", err)
		}
		if !acquired {
			uc.logger.Infow("subscription sweep skipped, another instance holds the lock")
			result.Skipped = true
			return result, nil
		}
		defer release()
	}

	now := uc.clock()
	var afterID uint
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		batch, err := uc.tenantRepo.ListWithNextPaymentDate(ctx, afterID, uc.batchSize)
		if err != nil {
			uc.logger.Errorw("failed to list tenants for sweep", "error", err, "after_id", afterID)
			return result, fmt.Errorf("failed to list tenants for sweep: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		for _, t := range batch {
			result.Scanned++
			uc.sweepOne(ctx, t, now, result)
		}

		afterID = batch[len(batch)-1].ID()
		if len(batch) < uc.batchSize {
			break
		}
	}

	uc.logger.Infow("subscription sweep completed",
		"scanned", result.Scanned,
		"updated", result.Updated(),
		"overdue", result.Overdue,
		"pending", result.Pending,
		"failed", result.Failed,
	)
	return result, nil
}

func (uc *SweepSubscriptionsUseCase) sweepOne(ctx context.Context, t *tenant.Tenant, now time.Time, result *dto.SweepResultDTO) {
	transition := t.EvaluateSweep(now, uc.windowDays)
	overdueBefore, pendingBefore := tenant.SweepCutoffs(now, uc.windowDays)

	var (
		changed bool
		err     error
	)
	switch transition {
	case tenant.SweepOverdue:
		changed, err = uc.tenantRepo.MarkOverdue(ctx, t.ID(), overdueBefore)
	case tenant.SweepPending:
		changed, err = uc.tenantRepo.MarkPending(ctx, t.ID(), overdueBefore, pendingBefore)
	default:
		return
	}

	if err != nil {
		result.Failed++
		uc.logger.Errorw("failed to apply sweep transition",
			"error", err,
			"tenant_id", t.ID(),
			"transition", transition.String(),
		)
		return
	}
	if !changed {
		// another writer got there first
		return
	}

	switch transition {
	case tenant.SweepOverdue:
		result.Overdue++
	case tenant.SweepPending:
		result.Pending++
	}
	uc.logger.Debugw("tenant payment status swept",
		"tenant_id", t.ID(),
		"transition", transition.String(),
		"next_payment_date", biztime.FormatDate(*t.NextPaymentDate()),
	)
}
