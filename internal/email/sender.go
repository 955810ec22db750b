package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pharmadesk/report-dispatch/internal/settings"
)

// SenderConfig tunes the retry loop. Zero values get the defaults.
type SenderConfig struct {
	// MaxAttempts is the total number of delivery attempts. Default: 3.
	MaxAttempts int

	// BaseDelay is multiplied by the attempt number to get the wait before the
	// next attempt: 2s, 4s, ... Default: 2s.
	BaseDelay time.Duration
}

// DefaultSenderConfig returns the production retry parameters.
func DefaultSenderConfig() SenderConfig {
	return SenderConfig{MaxAttempts: 3, BaseDelay: 2 * time.Second}
}

// Sender wraps a Transport in a bounded retry loop.
//
// The delay is base*attempt, i.e. linear. It is kept linear on purpose so
// delivery timing matches what operators already expect; do not switch it to
// exponential.
type Sender struct {
	newTransport TransportFactory
	cfg          SenderConfig
	logger       *slog.Logger

	// sleep waits for d or until ctx is done. Replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewSender returns a Sender that builds its Transport with factory.
func NewSender(factory TransportFactory, cfg SenderConfig, logger *slog.Logger) *Sender {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultSenderConfig().MaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultSenderConfig().BaseDelay
	}
	return &Sender{
		newTransport: factory,
		cfg:          cfg,
		logger:       logger,
		sleep:        sleepCtx,
	}
}

// Send delivers msg using the credentials in cfg. It returns as soon as one
// attempt succeeds. After MaxAttempts failures it returns Sent=false with the
// last error. If ctx ends during a backoff wait the loop stops early and the
// outcome reports the attempts actually made.
func (s *Sender) Send(ctx context.Context, cfg settings.DeliveryConfig, msg Message) Outcome {
	if msg.From == "" {
		msg.From = cfg.From
	}
	if len(msg.To) == 0 && cfg.Recipient != "" {
		msg.To = []string{cfg.Recipient}
	}

	transport := s.newTransport(cfg.APIKey)
	log := s.logger.With("subject", msg.Subject, "to", msg.To)

	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		lastErr = tryOnce(ctx, transport, msg)
		if lastErr == nil {
			log.Info("email: sent", "attempt", attempt)
			return Outcome{Sent: true, Attempts: attempt}
		}

		log.Warn("email: attempt failed",
			"attempt", attempt,
			"max", s.cfg.MaxAttempts,
			"error", lastErr,
		)

		if attempt < s.cfg.MaxAttempts {
			delay := s.cfg.BaseDelay * time.Duration(attempt)
			if err := s.sleep(ctx, delay); err != nil {
				log.Warn("email: retry abandoned", "attempt", attempt, "error", err)
				return Outcome{Attempts: attempt, Error: lastErr.Error()}
			}
		}
	}

	log.Error("email: delivery failed", "attempts", s.cfg.MaxAttempts, "error", lastErr)
	return Outcome{Attempts: s.cfg.MaxAttempts, Error: lastErr.Error()}
}

// tryOnce runs a single transport call, converting a panic into an error so
// it surfaces in the Outcome like any other failure.
func tryOnce(ctx context.Context, t Transport, msg Message) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("email: transport panic: %v", p)
		}
	}()
	return t.Send(ctx, msg)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
