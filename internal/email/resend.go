package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ResendEndpoint is the production Resend send-email URL.
const ResendEndpoint = "https://api.resend.com/emails"

// sharedHTTPClient is reused by every Transport built without an explicit
// client so connections are pooled across sends.
var sharedHTTPClient = &http.Client{Timeout: 15 * time.Second}

// resendClient is the concrete Transport backed by the Resend API.
type resendClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewResendClient returns a Transport that delivers email via Resend.
func NewResendClient(apiKey string) Transport {
	return NewResendClientWithEndpoint(apiKey, ResendEndpoint, nil)
}

// NewResendClientWithEndpoint is NewResendClient with an overridable endpoint
// and HTTP client. A nil client uses a shared client with a 15s timeout.
func NewResendClientWithEndpoint(apiKey, endpoint string, hc *http.Client) Transport {
	if hc == nil {
		hc = sharedHTTPClient
	}
	return &resendClient{
		apiKey:     apiKey,
		endpoint:   endpoint,
		httpClient: hc,
	}
}

// ResendFactory is the TransportFactory used in production.
func ResendFactory(apiKey string) Transport {
	return NewResendClient(apiKey)
}

// ─── RESEND API SHAPES ────────────────────────────────────────────────────────

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID string `json:"id"`

	// Resend reports failures either nested under "error" or flat at the
	// top level depending on the endpoint version.
	Error *struct {
		Name       string `json:"name"`
		Message    string `json:"message"`
		StatusCode int    `json:"statusCode"`
	} `json:"error"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// ─── HTTP SEND ────────────────────────────────────────────────────────────────

func (c *resendClient) Send(ctx context.Context, msg Message) error {
	bodyBytes, err := json.Marshal(resendRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("email: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("email: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email: http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("email: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var parsed resendResponse
		if json.Unmarshal(respBytes, &parsed) == nil {
			if parsed.Error != nil {
				return fmt.Errorf("email: Resend error %s (status %d): %s", parsed.Error.Name, resp.StatusCode, parsed.Error.Message)
			}
			if parsed.Message != "" {
				return fmt.Errorf("email: Resend error %s (status %d): %s", parsed.Name, resp.StatusCode, parsed.Message)
			}
		}
		return fmt.Errorf("email: unexpected status %d: %.200s", resp.StatusCode, string(respBytes))
	}

	var parsed resendResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return fmt.Errorf("email: unmarshal response (status %d): %w", resp.StatusCode, err)
	}
	if parsed.Error != nil {
		return fmt.Errorf("email: Resend error %s: %s", parsed.Error.Name, parsed.Error.Message)
	}

	return nil
}
