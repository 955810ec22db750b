package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/pharmadesk/report-dispatch/internal/calendar"
	"github.com/pharmadesk/report-dispatch/internal/db"
)

// ─── INPUT TYPES ─────────────────────────────────────────────────────────────

// RecordDispatchRunParams is the summary of one dispatcher invocation.
type RecordDispatchRunParams struct {
	Date      calendar.Date
	Status    int
	AllOK     bool
	Triggered []string
	Results   json.RawMessage // ordered job → outcome object; may be nil
}

// LogEmailParams is one delivery outcome.
type LogEmailParams struct {
	Recipient string
	Subject   string
	Sent      bool
	Attempts  int
	Error     string
}

// ─── METHODS ─────────────────────────────────────────────────────────────────

// RecordDispatchRun appends an audit row for a dispatcher invocation and
// returns its id. The row is informational; nothing reads it back to decide
// what to dispatch.
func (s *Store) RecordDispatchRun(ctx context.Context, p RecordDispatchRunParams) (uuid.UUID, error) {
	triggered := p.Triggered
	if triggered == nil {
		triggered = []string{}
	}

	run, err := s.q.CreateDispatchRun(ctx, db.CreateDispatchRunParams{
		ID:        uuid.New(),
		RunDate:   time.Date(p.Date.Year, p.Date.Month, p.Date.Day, 0, 0, 0, 0, time.UTC),
		Status:    int32(p.Status),
		AllOk:     p.AllOK,
		Triggered: triggered,
		Results: pqtype.NullRawMessage{
			RawMessage: p.Results,
			Valid:      len(p.Results) > 0,
		},
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("store: record dispatch run: %w", err)
	}
	return run.ID, nil
}

// LogEmail appends a row to email_log.
func (s *Store) LogEmail(ctx context.Context, p LogEmailParams) error {
	err := s.q.CreateEmailLog(ctx, db.CreateEmailLogParams{
		ID:        uuid.New(),
		Recipient: p.Recipient,
		Subject:   p.Subject,
		Sent:      p.Sent,
		Attempts:  int32(p.Attempts),
		Error: sql.NullString{
			String: p.Error,
			Valid:  p.Error != "",
		},
	})
	if err != nil {
		return fmt.Errorf("store: log email: %w", err)
	}
	return nil
}
