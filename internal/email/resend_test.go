package email_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmadesk/report-dispatch/internal/email"
)

func TestResendClient_PostsExpectedPayload(t *testing.T) {
	var got struct {
		From    string   `json:"from"`
		To      []string `json:"to"`
		Subject string   `json:"subject"`
		HTML    string   `json:"html"`
	}
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"em_123"}`))
	}))
	defer srv.Close()

	tr := email.NewResendClientWithEndpoint("re_key", srv.URL, srv.Client())
	err := tr.Send(context.Background(), email.Message{
		From:    "Reports <r@pharmacy.test>",
		To:      []string{"owner@pharmacy.test"},
		Subject: "Daily Sales Report",
		HTML:    "<p>hi</p>",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer re_key", auth)
	assert.Equal(t, "Reports <r@pharmacy.test>", got.From)
	assert.Equal(t, []string{"owner@pharmacy.test"}, got.To)
	assert.Equal(t, "Daily Sales Report", got.Subject)
	assert.Equal(t, "<p>hi</p>", got.HTML)
}

func TestResendClient_ErrorResponses(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"flat error", http.StatusUnprocessableEntity, `{"name":"validation_error","message":"bad from"}`, "validation_error"},
		{"nested error", http.StatusUnauthorized, `{"error":{"name":"invalid_api_key","message":"nope"}}`, "invalid_api_key"},
		{"non json", http.StatusBadGateway, `upstream sad`, "unexpected status 502"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			tr := email.NewResendClientWithEndpoint("re_key", srv.URL, srv.Client())
			err := tr.Send(context.Background(), email.Message{To: []string{"a@b.test"}})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestResendClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	tr := email.NewResendClientWithEndpoint("re_key", url, nil)
	err := tr.Send(context.Background(), email.Message{To: []string{"a@b.test"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http request")
}
