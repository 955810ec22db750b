package dispatch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmadesk/report-dispatch/internal/calendar"
	"github.com/pharmadesk/report-dispatch/internal/dispatch"
)

func TestHTTPTrigger_PostsWithBearer(t *testing.T) {
	var gotPath, gotAuth, gotMethod, gotDate string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotAuth, gotMethod = r.URL.Path, r.Header.Get("Authorization"), r.Method
		gotDate = r.URL.Query().Get("date")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := dispatch.NewHTTPTrigger(srv.URL+"/", srv.Client())
	status, err := tr.Trigger(context.Background(), dispatch.JobMonthly, calendar.NewDate(2025, time.January, 31), "s3cret")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "/api/cron/monthly-report", gotPath)
	assert.Equal(t, "Bearer s3cret", gotAuth)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "2025-01-31", gotDate)
}

func TestHTTPTrigger_OmitsHeaderWithoutCredential(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	_, err := dispatch.NewHTTPTrigger(srv.URL, nil).Trigger(context.Background(), dispatch.JobDaily, calendar.NewDate(2025, time.March, 10), "")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestHTTPTrigger_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream failed", http.StatusBadGateway)
	}))
	defer srv.Close()

	status, err := dispatch.NewHTTPTrigger(srv.URL, nil).Trigger(context.Background(), dispatch.JobDaily, calendar.NewDate(2025, time.March, 10), "")
	assert.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, status)
}

func TestHTTPTrigger_UnreachableHasZeroStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	status, err := dispatch.NewHTTPTrigger(url, nil).Trigger(context.Background(), dispatch.JobDaily, calendar.NewDate(2025, time.March, 10), "")
	assert.Error(t, err)
	assert.Equal(t, 0, status)
}
