// Package dispatch runs the daily report fan-out: it decides which report jobs
// are due on the regional calendar date and triggers each one in isolation.
package dispatch

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pharmadesk/report-dispatch/internal/calendar"
	"github.com/pharmadesk/report-dispatch/internal/dedup"
	"github.com/pharmadesk/report-dispatch/internal/store"
)

// ErrUnauthorized is returned when a dispatch secret is configured and the
// caller's credential is missing or does not match.
var ErrUnauthorized = errors.New("dispatch: unauthorized")

// DefaultJobTimeout bounds each sub-request.
const DefaultJobTimeout = 60 * time.Second

// Marker suppresses duplicate dispatch of a job on the same date.
type Marker interface {
	Claim(ctx context.Context, date, job string) (bool, error)
	Release(ctx context.Context, date, job string) error
}

// RunRecorder persists a dispatch run summary.
type RunRecorder interface {
	RecordDispatchRun(ctx context.Context, p store.RecordDispatchRunParams) (uuid.UUID, error)
}

// Config holds dispatcher settings.
type Config struct {
	// Secret, when non-empty, must match the caller's bearer credential.
	Secret     string
	JobTimeout time.Duration
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMarker enables per-day dedup. The default dedup.NopMarker claims
// every job.
func WithMarker(m Marker) Option {
	return func(d *Dispatcher) { d.marker = m }
}

// WithRecorder persists each run.
func WithRecorder(r RunRecorder) Option {
	return func(d *Dispatcher) { d.recorder = r }
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// Dispatcher triggers the report jobs due today.
type Dispatcher struct {
	trigger  Trigger
	marker   Marker
	recorder RunRecorder
	cfg      Config
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a Dispatcher.
func New(trigger Trigger, cfg Config, logger *slog.Logger, opts ...Option) *Dispatcher {
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = DefaultJobTimeout
	}
	d := &Dispatcher{
		trigger: trigger,
		marker:  dedup.NopMarker{},
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Authorized reports whether credential may invoke the dispatcher.
func (d *Dispatcher) Authorized(credential string) bool {
	if d.cfg.Secret == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(credential), []byte(d.cfg.Secret)) == 1
}

// Run authenticates the caller, computes the due set for the current
// regional date and triggers each due job sequentially in fixed order. A
// failure in one job never prevents the others from being attempted. If ctx
// is cancelled mid-run, jobs not yet dispatched are recorded as failed.
func (d *Dispatcher) Run(ctx context.Context, credential string) (Result, error) {
	if !d.Authorized(credential) {
		d.logger.Warn("dispatch: rejected unauthorized trigger")
		return Result{}, ErrUnauthorized
	}

	today := calendar.ToRegional(d.now())
	due := DueJobs(today)
	res := Result{
		Triggered:        []Job{},
		Results:          Outcomes{},
		ISTDate:          today.String(),
		IsLastDayOfMonth: due.Monthly,
		IsJanFirst:       due.Annual,
		Date:             today,
	}

	for _, job := range due.Jobs() {
		// Jobs never sent are reported as failed outcomes but are not
		// listed as triggered.
		if err := ctx.Err(); err != nil {
			res.Results = append(res.Results, JobOutcome{Job: job, Error: "not dispatched: " + err.Error()})
			continue
		}

		if !d.claim(ctx, today, job) {
			d.logger.Info("dispatch: job already dispatched today", "job", job, "date", res.ISTDate)
			res.Skipped = append(res.Skipped, job)
			continue
		}

		res.Triggered = append(res.Triggered, job)
		out := d.dispatchOne(ctx, job, today, credential)
		res.Results = append(res.Results, out)

		if out.OK {
			d.logger.Info("dispatch: job ok", "job", job, "status", out.Status)
		} else {
			d.logger.Error("dispatch: job failed", "job", job, "status", out.Status, "error", out.Error)
			d.release(ctx, today, job)
		}
	}

	res.AllOK = res.Results.AllOK()
	d.record(ctx, res)

	d.logger.Info("dispatch: run complete",
		"date", res.ISTDate,
		"triggered", len(res.Triggered),
		"skipped", len(res.Skipped),
		"all_ok", res.AllOK,
	)
	return res, nil
}

// dispatchOne triggers a single job under its own deadline. Panics in the
// trigger are converted to a failed outcome.
func (d *Dispatcher) dispatchOne(ctx context.Context, job Job, today calendar.Date, credential string) (out JobOutcome) {
	out.Job = job
	defer func() {
		if r := recover(); r != nil {
			out.OK = false
			out.Error = fmt.Sprintf("panic: %v", r)
		}
	}()

	jobCtx, cancel := context.WithTimeout(ctx, d.cfg.JobTimeout)
	defer cancel()

	status, err := d.trigger.Trigger(jobCtx, job, today, credential)
	out.Status = status
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.OK = status >= 200 && status < 300
	if !out.OK {
		out.Error = fmt.Sprintf("unexpected status %d", status)
	}
	return out
}

// claim fails open: a marker error dispatches the job anyway.
func (d *Dispatcher) claim(ctx context.Context, today calendar.Date, job Job) bool {
	ok, err := d.marker.Claim(ctx, today.String(), string(job))
	if err != nil {
		d.logger.Warn("dispatch: dedup claim failed, dispatching anyway", "job", job, "error", err)
		return true
	}
	return ok
}

func (d *Dispatcher) release(ctx context.Context, today calendar.Date, job Job) {
	if err := d.marker.Release(context.WithoutCancel(ctx), today.String(), string(job)); err != nil {
		d.logger.Warn("dispatch: dedup release failed", "job", job, "error", err)
	}
}

func (d *Dispatcher) record(ctx context.Context, res Result) {
	if d.recorder == nil {
		return
	}
	results, err := json.Marshal(res.Results)
	if err != nil {
		d.logger.Warn("dispatch: marshal results", "error", err)
		return
	}
	triggered := make([]string, len(res.Triggered))
	for i, j := range res.Triggered {
		triggered[i] = string(j)
	}
	id, err := d.recorder.RecordDispatchRun(context.WithoutCancel(ctx), store.RecordDispatchRunParams{
		Date:      res.Date,
		Status:    res.HTTPStatus(),
		AllOK:     res.AllOK,
		Triggered: triggered,
		Results:   results,
	})
	if err != nil {
		d.logger.Warn("dispatch: record run", "error", err)
		return
	}
	d.logger.Debug("dispatch: run recorded", "run_id", id)
}
