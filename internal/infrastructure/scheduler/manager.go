// Package scheduler runs the background jobs on a gocron v2 scheduler.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/deskhub/deskhub/internal/shared/biztime"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

// BatchJob processes one batch per call and returns the number of items
// it handled.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// archiveTimeout bounds a single sweep run.
const archiveTimeout = 10 * time.Minute

// SchedulerManager owns the gocron scheduler and its jobs.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a scheduler in the business timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterArchiveJob runs the stale-ticket sweep every interval, starting
// immediately. Singleton mode keeps runs from overlapping.
func (m *SchedulerManager) RegisterArchiveJob(job BatchJob, interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
			defer cancel()
			m.runArchive(ctx, job)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("ticket", "archive"),
		gocron.WithName("ticket-archive"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered archive job", "interval", interval.String())
	return nil
}

func (m *SchedulerManager) runArchive(ctx context.Context, job BatchJob) {
	m.logger.Debugw("archive sweep started")

	startTime := biztime.NowUTC()
	count, err := job.Execute(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("archive sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if count > 0 {
		m.logger.Infow("archive sweep completed",
			"count", count,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("no stale tickets to archive",
			"duration", time.Since(startTime),
		)
	}
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

// Run starts the scheduler and stops it when ctx is done. Running jobs are
// waited for.
func (m *SchedulerManager) Run(ctx context.Context) error {
	m.Start()
	<-ctx.Done()
	return m.Stop()
}

// Stop waits for running jobs and shuts the scheduler down.
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
