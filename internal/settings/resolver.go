// Package settings resolves the email delivery configuration from its three
// layers: a persisted override row, the environment, and a literal fallback.
//
// Nothing is cached. Every Resolve call re-reads the override store so an
// admin's edit takes effect on the very next send.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
)

// Persisted override keys.
const (
	KeyAPIKey    = "resend_api_key"
	KeyRecipient = "report_recipient_email"
	KeyFrom      = "email_from"
)

// DefaultFrom is used when neither the store nor the environment names a
// sender address.
const DefaultFrom = "Pharmacy Reports <onboarding@resend.dev>"

// DeliveryConfig is the resolved configuration for one delivery attempt.
// An empty APIKey or Recipient means "absent".
type DeliveryConfig struct {
	APIKey    string
	Recipient string
	From      string
}

// HasCredentials reports whether both an API key and a recipient resolved.
func (c DeliveryConfig) HasCredentials() bool {
	return c.APIKey != "" && c.Recipient != ""
}

// Reader is the persisted key-value override store. A missing key may be
// reported either as ("", nil) or as sql.ErrNoRows.
type Reader interface {
	GetAppSetting(ctx context.Context, key string) (string, error)
}

// Resolver applies the precedence persisted → env → literal per field.
type Resolver struct {
	store  Reader
	env    DeliveryConfig
	logger *slog.Logger
}

// NewResolver returns a Resolver. env holds the environment layer; its empty
// fields fall through to the literal defaults. store may be nil, in which case
// only env and defaults are consulted.
func NewResolver(store Reader, env DeliveryConfig, logger *slog.Logger) *Resolver {
	return &Resolver{store: store, env: env, logger: logger}
}

// Resolve always returns a usable (possibly incomplete) config. Store read
// failures are logged and treated as "no override".
func (r *Resolver) Resolve(ctx context.Context) DeliveryConfig {
	return DeliveryConfig{
		APIKey:    r.field(ctx, KeyAPIKey, r.env.APIKey, ""),
		Recipient: r.field(ctx, KeyRecipient, r.env.Recipient, ""),
		From:      r.field(ctx, KeyFrom, r.env.From, DefaultFrom),
	}
}

func (r *Resolver) field(ctx context.Context, key, envValue, fallback string) string {
	if v := r.persisted(ctx, key); v != "" {
		return v
	}
	if v := strings.TrimSpace(envValue); v != "" {
		return v
	}
	return fallback
}

func (r *Resolver) persisted(ctx context.Context, key string) string {
	if r.store == nil {
		return ""
	}
	v, err := r.store.GetAppSetting(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return ""
	}
	if err != nil {
		r.logger.Warn("settings: override read failed, using environment", "key", key, "error", err)
		return ""
	}
	return strings.TrimSpace(v)
}
