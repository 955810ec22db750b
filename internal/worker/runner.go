// Package worker runs the in-process daily scheduler. It replaces an external
// cron by invoking the dispatcher once per regional day at a fixed clock time.
// The api package never imports it; main wires it in when enabled.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pharmadesk/report-dispatch/internal/calendar"
	"github.com/pharmadesk/report-dispatch/internal/dispatch"
)

// ─── DISPATCHER INTERFACE ─────────────────────────────────────────────────────

// Dispatcher is the narrow interface the scheduler drives. The concrete
// implementation is *dispatch.Dispatcher.
type Dispatcher interface {
	Run(ctx context.Context, credential string) (dispatch.Result, error)
}

// ─── RUNNER ───────────────────────────────────────────────────────────────────

// RunnerConfig holds tuning parameters for the Runner. Zero values fall back
// to DefaultRunnerConfig.
type RunnerConfig struct {
	// Hour and Minute are the regional wall-clock time of the daily run.
	Hour   int
	Minute int

	// Credential is passed to the dispatcher as the caller's secret.
	Credential string

	// RunTimeout bounds a whole dispatcher run. Default: 5 minutes.
	RunTimeout time.Duration

	// MaxRetries is the number of runs attempted per day while some job is
	// failing. Only safe with dedup enabled, since a repeat run otherwise
	// re-sends the reports that already succeeded. Default: 1.
	MaxRetries int
}

// DefaultRunnerConfig returns the production defaults: 23:30 regional time,
// one run per day.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Hour:       23,
		Minute:     30,
		RunTimeout: 5 * time.Minute,
		MaxRetries: 1,
	}
}

// Runner fires the dispatcher once per regional day.
type Runner struct {
	dispatcher Dispatcher
	cfg        RunnerConfig
	logger     *slog.Logger

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// NewRunner constructs a Runner. Call Start to begin scheduling.
func NewRunner(d Dispatcher, cfg RunnerConfig, logger *slog.Logger) *Runner {
	def := DefaultRunnerConfig()
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = def.RunTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	return &Runner{
		dispatcher: d,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
		after:      time.After,
	}
}

// NextRun returns the first instant strictly after now at which the regional
// clock reads hour:minute.
func NextRun(now time.Time, hour, minute int) time.Time {
	local := now.In(calendar.Zone)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, calendar.Zone)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Start blocks until ctx is cancelled, running the dispatcher at each
// scheduled time. Call it in a goroutine from main:
//
//	go runner.Start(ctx)
func (r *Runner) Start(ctx context.Context) {
	r.logger.Info("worker: scheduler starting", "hour", r.cfg.Hour, "minute", r.cfg.Minute)

	for ctx.Err() == nil {
		next := NextRun(r.now(), r.cfg.Hour, r.cfg.Minute)
		r.logger.Info("worker: next dispatch scheduled", "at", next.Format(time.RFC3339))

		select {
		case <-ctx.Done():
			r.logger.Info("worker: scheduler stopped")
			return
		case <-r.after(next.Sub(r.now())):
		}

		r.runWithRetry(ctx)
	}
	r.logger.Info("worker: scheduler stopped")
}

// runWithRetry runs the dispatcher up to MaxRetries times while any job
// fails, backing off 2s, 4s, 8s between runs.
func (r *Runner) runWithRetry(ctx context.Context) {
	for attempt := 1; attempt <= r.cfg.MaxRetries; attempt++ {
		runCtx, cancel := context.WithTimeout(ctx, r.cfg.RunTimeout)
		res, err := r.dispatcher.Run(runCtx, r.cfg.Credential)
		cancel()

		if errors.Is(err, dispatch.ErrUnauthorized) {
			r.logger.Error("worker: scheduler credential rejected by dispatcher")
			return
		}
		if err == nil && res.AllOK {
			r.logger.Info("worker: scheduled dispatch completed",
				"date", res.ISTDate,
				"attempt", attempt,
				"triggered", len(res.Triggered),
			)
			return
		}

		r.logger.Warn("worker: scheduled dispatch incomplete",
			"attempt", attempt,
			"max", r.cfg.MaxRetries,
			"error", err,
		)

		if attempt < r.cfg.MaxRetries {
			backoff := time.Duration(1<<attempt) * time.Second
			select {
			case <-ctx.Done():
				return
			case <-r.after(backoff):
			}
		}
	}
	r.logger.Error("worker: scheduled dispatch gave up for today")
}
