// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/tenantgate/tenantgate/internal/shared/biztime"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

const (
	DefaultSweepInterval   = 6 * time.Hour
	DefaultSweepJobTimeout = 5 * time.Minute
)

// BatchJob defines the interface for a scheduled batch processing job.
// Each Execute call processes a batch and returns the number of items processed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager owns the process scheduler. It is created and started by the
// composition root and stopped on shutdown.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager initializes gocron with the business timezone for cron expressions.
func NewSchedulerManager(log logger.Interface, opts ...gocron.SchedulerOption) (*SchedulerManager, error) {
	opts = append([]gocron.SchedulerOption{gocron.WithLocation(biztime.Location())}, opts...)
	scheduler, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterSubscriptionSweep runs the sweep once on start and then every interval.
// A run that overlaps the previous one is rescheduled instead of stacked.
func (m *SchedulerManager) RegisterSubscriptionSweep(sweepJob BatchJob, interval, timeout time.Duration) error {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if timeout <= 0 {
		timeout = DefaultSweepJobTimeout
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			m.processSubscriptionSweep(ctx, sweepJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("subscription", "sweep"),
		gocron.WithName("subscription-sweep"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered subscription sweep job", "interval", interval.String(), "timeout", timeout.String())
	return nil
}

func (m *SchedulerManager) processSubscriptionSweep(ctx context.Context, sweepJob BatchJob) {
	m.logger.Debugw("subscription sweep started")

	startTime := biztime.NowUTC()

	updated, err := sweepJob.Execute(ctx)
	if err != nil {
		m.logger.Errorw("failed to sweep subscriptions",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if updated > 0 {
		m.logger.Infow("subscription sweep updated tenants",
			"count", updated,
			"duration", time.Since(startTime),
		)
		return
	}

	m.logger.Debugw("subscription sweep found nothing to update", "duration", time.Since(startTime))
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
