package core

// scheduler.go runs the seeding pipeline periodically.
//
// The schedule is a standard five-field cron expression or a descriptor such
// as "@daily" or "@every 6h". A run that is still in progress when the next
// tick fires causes that tick to be skipped, so runs never overlap. Each run
// gets its own run ID. Failures are logged and do not stop the scheduler.

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/brewsandbytes/seeder/internal/logging"
)

// Runner performs one seeding run.
type Runner interface {
	Run(ctx context.Context) (*Report, error)
}

// Scheduler reruns a Runner on a cron schedule.
type Scheduler struct {
	runner     Runner
	spec       string
	schedule   cron.Schedule
	runOnStart bool
}

// NewScheduler validates spec and returns a Scheduler for runner.
func NewScheduler(runner Runner, spec string, runOnStart bool) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return &Scheduler{
		runner:     runner,
		spec:       spec,
		schedule:   schedule,
		runOnStart: runOnStart,
	}, nil
}

// Start runs the schedule until ctx is cancelled, then waits for an
// in-flight run to finish before returning.
func (s *Scheduler) Start(ctx context.Context) error {
	logger := cronLogger{logger: slog.Default()}
	c := cron.New(cron.WithLogger(logger))

	job := cron.NewChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)).
		Then(cron.FuncJob(func() { s.runOnce(ctx) }))
	c.Schedule(s.schedule, job)

	slog.Info("seed scheduler started", "schedule", s.spec, "run_on_start", s.runOnStart)

	var initial sync.WaitGroup
	c.Start()
	if s.runOnStart {
		initial.Add(1)
		go func() {
			defer initial.Done()
			job.Run()
		}()
	}

	if entries := c.Entries(); len(entries) > 0 {
		slog.Info("next seed run scheduled", "at", entries[0].Next)
	}

	<-ctx.Done()
	stopped := c.Stop()
	<-stopped.Done()
	initial.Wait()

	slog.Info("seed scheduler stopped")
	return nil
}

// runOnce performs one scheduled run under a fresh run ID.
func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	ctx = logging.WithRunID(ctx, logging.NewRunID())

	if _, err := s.runner.Run(ctx); err != nil {
		logging.FromContext(ctx).Error("scheduled seed run failed",
			"error", err,
			"code", MapError(err).Code,
		)
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
