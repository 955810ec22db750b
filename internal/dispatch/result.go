package dispatch

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/pharmadesk/report-dispatch/internal/calendar"
)

// JobOutcome is the result of one sub-request. Status is 0 when no HTTP
// response was received (network error, timeout, cancellation).
type JobOutcome struct {
	Job    Job
	Status int
	OK     bool
	Error  string
}

// Outcomes keeps job outcomes in dispatch order. It marshals as a JSON object
// keyed by job name, preserving that order.
type Outcomes []JobOutcome

type outcomeJSON struct {
	Status int    `json:"status"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

// MarshalJSON writes {"daily":{...},"monthly":{...}} in slice order.
func (o Outcomes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, out := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(out.Job))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(outcomeJSON{Status: out.Status, OK: out.OK, Error: out.Error})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the outcome for job, if it was recorded.
func (o Outcomes) Get(job Job) (JobOutcome, bool) {
	for _, out := range o {
		if out.Job == job {
			return out, true
		}
	}
	return JobOutcome{}, false
}

// AllOK reports whether every recorded outcome succeeded.
func (o Outcomes) AllOK() bool {
	for _, out := range o {
		if !out.OK {
			return false
		}
	}
	return true
}

// Result is the aggregate of one dispatcher run.
type Result struct {
	Triggered        []Job    `json:"triggered"`
	Skipped          []Job    `json:"skipped,omitempty"`
	Results          Outcomes `json:"results"`
	ISTDate          string   `json:"istDate"`
	IsLastDayOfMonth bool     `json:"isLastDayOfMonth"`
	IsJanFirst       bool     `json:"isJanFirst"`

	Date  calendar.Date `json:"-"`
	AllOK bool          `json:"-"`
}

// HTTPStatus is 200 when every dispatched job succeeded and 207 otherwise.
func (r Result) HTTPStatus() int {
	if r.AllOK {
		return http.StatusOK
	}
	return http.StatusMultiStatus
}
