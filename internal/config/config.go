// Package config loads and validates all environment variables at startup.
// Every other package receives typed values. Nothing else reads os.Getenv.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the fully-parsed application configuration.
type Config struct {
	// ── Server ────────────────────────────────────────────────────────────────
	Port    string `env:"PORT" envDefault:"8080"`
	Env     string `env:"ENV" envDefault:"development"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"` // self URL for job sub-requests

	// ── Storage ───────────────────────────────────────────────────────────────
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"` // optional, needed only for dedup

	// ── Auth ──────────────────────────────────────────────────────────────────
	// Empty CronSecret leaves the trigger open; empty InternalAPIToken keeps
	// the bill-number endpoint unmounted.
	CronSecret       string `env:"CRON_SECRET"`
	InternalAPIToken string `env:"INTERNAL_API_TOKEN"`

	Delivery  DeliveryConfig
	Dispatch  DispatchConfig
	Scheduler SchedulerConfig
}

// DeliveryConfig is the env layer of the email settings. Values persisted in
// app_settings take precedence at send time.
type DeliveryConfig struct {
	APIKey      string        `env:"RESEND_API_KEY"`
	Recipient   string        `env:"REPORT_RECIPIENT_EMAIL"`
	From        string        `env:"EMAIL_FROM"`
	MaxAttempts int           `env:"EMAIL_MAX_ATTEMPTS" envDefault:"3"`
	BaseDelay   time.Duration `env:"EMAIL_BASE_DELAY" envDefault:"2s"`
}

// DispatchConfig tunes the report dispatcher.
type DispatchConfig struct {
	JobTimeout time.Duration `env:"DISPATCH_JOB_TIMEOUT" envDefault:"60s"`
	Dedup      bool          `env:"DISPATCH_DEDUP" envDefault:"false"`
}

// SchedulerConfig controls the optional in-process daily trigger.
type SchedulerConfig struct {
	Enabled bool   `env:"SCHEDULER_ENABLED" envDefault:"false"`
	RunAt   string `env:"SCHEDULER_RUN_AT" envDefault:"23:30"`
}

// Load reads all environment variables and returns a validated Config.
// A .env file in the working directory is loaded first when present, so
// plain `go run ./cmd/api` works in development. Real environment variables
// always take precedence over .env values.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	return &c, c.validate()
}

func (c *Config) validate() error {
	var errs []error

	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("missing required env var: DATABASE_URL"))
	}
	if c.Dispatch.Dedup && c.RedisURL == "" {
		errs = append(errs, errors.New("DISPATCH_DEDUP=true requires REDIS_URL"))
	}
	if c.Delivery.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("EMAIL_MAX_ATTEMPTS must be at least 1, got %d", c.Delivery.MaxAttempts))
	}
	if c.Delivery.BaseDelay < 0 {
		errs = append(errs, fmt.Errorf("EMAIL_BASE_DELAY must not be negative, got %s", c.Delivery.BaseDelay))
	}
	if _, _, err := c.Scheduler.Clock(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Clock parses RunAt as a 24-hour HH:MM regional time.
func (s SchedulerConfig) Clock() (hour, minute int, err error) {
	h, m, ok := strings.Cut(s.RunAt, ":")
	if !ok || len(h) != 2 || len(m) != 2 {
		return 0, 0, fmt.Errorf("SCHEDULER_RUN_AT must be HH:MM, got %q", s.RunAt)
	}
	hour, herr := strconv.Atoi(h)
	minute, merr := strconv.Atoi(m)
	if herr != nil || merr != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("SCHEDULER_RUN_AT must be HH:MM, got %q", s.RunAt)
	}
	return hour, minute, nil
}
