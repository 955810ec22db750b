package dispatch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pharmadesk/report-dispatch/internal/calendar"
)

// Trigger issues the sub-request for one job and returns its HTTP status.
// date is the regional date the job was found due on; the report covers the
// period ending on it even if the request lands after midnight.
// A non-nil error marks the job as failed; the status may still be set.
type Trigger interface {
	Trigger(ctx context.Context, job Job, date calendar.Date, credential string) (int, error)
}

// HTTPTrigger calls the report endpoints over HTTP.
type HTTPTrigger struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTrigger returns a Trigger that POSTs to baseURL + job.Path(). A nil
// client gets one without a timeout; the dispatcher bounds each call with its
// own context deadline.
func NewHTTPTrigger(baseURL string, client *http.Client) *HTTPTrigger {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPTrigger{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Trigger forwards credential as a bearer token and date as the "date" query
// parameter. Non-2xx responses are returned with their status and an error.
func (t *HTTPTrigger) Trigger(ctx context.Context, job Job, date calendar.Date, credential string) (int, error) {
	target := t.baseURL + job.Path() + "?" + url.Values{"date": {date.String()}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, nil)
	if err != nil {
		return 0, fmt.Errorf("dispatch: build %s request: %w", job, err)
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}
	req.Header.Set("User-Agent", "report-dispatch/1")

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("dispatch: %s request: %w", job, err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("dispatch: %s returned status %d after %s",
			job, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	}
	return resp.StatusCode, nil
}
