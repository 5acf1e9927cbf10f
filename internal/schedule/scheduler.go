// Package schedule runs export jobs on a cron schedule for deployments that
// refresh the CSV tree periodically instead of invoking the CLI by hand.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled unit of work
type Job func(ctx context.Context) error

// Scheduler runs a job at cron intervals (e.g. daily at 6 AM). Runs never
// overlap: a tick that arrives while the previous run is still going is
// skipped.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	mu      sync.Mutex
	running bool
	busy    bool
}

// NewScheduler creates a new export scheduler
func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:   cron.New(),
		logger: logger.With("component", "schedule"),
	}
}

// Start begins running the job on the given cron expression.
//
// Common expressions:
//   - "0 6 * * *"   - daily at 6 AM
//   - "0 */6 * * *" - every 6 hours
//   - "0 0 * * 0"   - weekly on Sunday at midnight
//
// The scheduler stops when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context, spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already started")
	}

	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}

	_, err := s.cron.AddFunc(spec, func() {
		s.runJob(ctx, job)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("export scheduler started", "schedule", spec)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop halts the scheduler; a run already in flight finishes
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
	s.logger.Info("export scheduler stopped")
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		s.logger.Warn("skipping scheduled run, previous run still in progress")
		return
	}
	s.busy = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	if err := job(ctx); err != nil {
		s.logger.Error("scheduled run failed", "error", err)
	}
}
