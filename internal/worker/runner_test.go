package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmadesk/report-dispatch/internal/calendar"
	"github.com/pharmadesk/report-dispatch/internal/dispatch"
)

type fakeDispatcher struct {
	results []dispatch.Result
	errs    []error
	creds   []string
	onRun   func()
}

func (f *fakeDispatcher) Run(_ context.Context, credential string) (dispatch.Result, error) {
	i := len(f.creds)
	f.creds = append(f.creds, credential)
	if f.onRun != nil {
		f.onRun()
	}
	var res dispatch.Result
	var err error
	if i < len(f.results) {
		res = f.results[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return res, err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// immediate fires every wait at once and records the requested durations.
func immediate(waits *[]time.Duration) func(time.Duration) <-chan time.Time {
	return func(d time.Duration) <-chan time.Time {
		*waits = append(*waits, d)
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return ch
	}
}

func TestNextRun(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"earlier same day", time.Date(2025, 3, 10, 10, 0, 0, 0, calendar.Zone), "2025-03-10T23:30:00+05:30"},
		{"exactly at run time", time.Date(2025, 3, 10, 23, 30, 0, 0, calendar.Zone), "2025-03-11T23:30:00+05:30"},
		{"after run time", time.Date(2025, 3, 10, 23, 45, 0, 0, calendar.Zone), "2025-03-11T23:30:00+05:30"},
		{"utc input", time.Date(2025, 12, 31, 18, 30, 0, 0, time.UTC), "2026-01-01T23:30:00+05:30"},
		{"month rollover", time.Date(2025, 1, 31, 23, 59, 0, 0, calendar.Zone), "2025-02-01T23:30:00+05:30"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextRun(tc.now, 23, 30)
			assert.Equal(t, tc.want, got.Format(time.RFC3339))
		})
	}
}

func TestStart_RunsDispatcherAtScheduledTime(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fd := &fakeDispatcher{
		results: []dispatch.Result{{AllOK: true}},
		onRun:   cancel,
	}
	r := NewRunner(fd, RunnerConfig{Hour: 23, Minute: 30, Credential: "s3cret"}, discardLogger())
	r.now = func() time.Time { return time.Date(2025, 3, 10, 23, 0, 0, 0, calendar.Zone) }
	var waits []time.Duration
	r.after = immediate(&waits)

	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}

	assert.Equal(t, []string{"s3cret"}, fd.creds)
	require.NotEmpty(t, waits)
	assert.Equal(t, 30*time.Minute, waits[0])
}

func TestRunWithRetry_RetriesIncompleteRuns(t *testing.T) {
	fd := &fakeDispatcher{
		results: []dispatch.Result{{AllOK: false}, {AllOK: false}, {AllOK: true}},
	}
	r := NewRunner(fd, RunnerConfig{MaxRetries: 3}, discardLogger())
	var waits []time.Duration
	r.after = immediate(&waits)

	r.runWithRetry(context.Background())

	assert.Len(t, fd.creds, 3)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, waits)
}

func TestRunWithRetry_StopsOnUnauthorized(t *testing.T) {
	fd := &fakeDispatcher{errs: []error{dispatch.ErrUnauthorized}}
	r := NewRunner(fd, RunnerConfig{MaxRetries: 3}, discardLogger())
	var waits []time.Duration
	r.after = immediate(&waits)

	r.runWithRetry(context.Background())

	assert.Len(t, fd.creds, 1)
	assert.Empty(t, waits)
}

func TestRunWithRetry_DefaultsToSingleRun(t *testing.T) {
	fd := &fakeDispatcher{errs: []error{errors.New("boom")}}
	r := NewRunner(fd, RunnerConfig{}, discardLogger())
	var waits []time.Duration
	r.after = immediate(&waits)

	r.runWithRetry(context.Background())

	assert.Len(t, fd.creds, 1)
}
