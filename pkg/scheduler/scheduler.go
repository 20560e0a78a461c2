// Package scheduler runs a job on a cron schedule and on demand, never more
// than one run at a time.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is the work run on each tick.
type Job func(ctx context.Context) error

// Scheduler runs a Job on a standard five-field cron schedule.
//
// Common cron expressions:
//   - "*/5 * * * *"  - Every 5 minutes
//   - "0 * * * *"    - Hourly
//   - "0 9 * * 1-5"  - Weekdays at 9 AM
type Scheduler struct {
	schedule string
	job      Job
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool

	// runMu serializes job runs; a tick that finds it held is skipped.
	runMu sync.Mutex
	runs  int
	skips int
}

// New validates schedule and creates a stopped scheduler.
func New(schedule string, job Job) (*Scheduler, error) {
	if schedule == "" {
		return nil, fmt.Errorf("cron schedule is required")
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	if job == nil {
		return nil, fmt.Errorf("job is required")
	}

	return &Scheduler{
		schedule: schedule,
		job:      job,
		cron:     cron.New(cron.WithLocation(time.UTC)),
		logger:   slog.Default().With("component", "scheduler"),
	}, nil
}

// Start schedules the job and starts the cron loop. The scheduler stops
// when ctx is canceled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.Trigger(ctx, "cron")
	}); err != nil {
		return fmt.Errorf("failed to schedule job: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("scheduler.started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Trigger runs the job now unless a run is in progress. It reports whether
// the job ran.
func (s *Scheduler) Trigger(ctx context.Context, reason string) bool {
	if !s.runMu.TryLock() {
		s.mu.Lock()
		s.skips++
		s.mu.Unlock()
		s.logger.Debug("scheduler.run.skipped", "reason", reason)
		return false
	}
	defer s.runMu.Unlock()

	if ctx.Err() != nil {
		return false
	}

	start := time.Now()
	err := s.job(ctx)

	s.mu.Lock()
	s.runs++
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("scheduler.run.failed",
			"reason", reason,
			"duration", time.Since(start),
			"error", err,
		)
		return true
	}
	s.logger.Debug("scheduler.run.completed",
		"reason", reason,
		"duration", time.Since(start),
	)
	return true
}

// Stop stops the scheduler and waits for a running job to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.logger.Info("scheduler.stopped")
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled run, or nil when not started.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}

// Stats returns the number of completed and skipped runs.
func (s *Scheduler) Stats() (runs, skips int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs, s.skips
}
