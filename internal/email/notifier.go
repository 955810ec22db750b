package email

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/pharmadesk/report-dispatch/internal/settings"
	"github.com/pharmadesk/report-dispatch/internal/store"
)

// ErrNotConfigured means no API key or no recipient could be resolved.
// Retrying cannot fix it, so the Notifier returns it without attempting a
// send.
var ErrNotConfigured = errors.New("email: delivery not configured (missing API key or recipient)")

// ConfigResolver yields the delivery configuration for one send.
type ConfigResolver interface {
	Resolve(ctx context.Context) settings.DeliveryConfig
}

// DeliveryLog records delivery outcomes. Implemented by *store.Store.
type DeliveryLog interface {
	LogEmail(ctx context.Context, p store.LogEmailParams) error
}

// Notifier sends report emails to the configured recipient.
type Notifier struct {
	resolver ConfigResolver
	sender   *Sender
	log      DeliveryLog
	logger   *slog.Logger
}

// NewNotifier wires a Notifier. deliveryLog may be nil.
func NewNotifier(resolver ConfigResolver, sender *Sender, deliveryLog DeliveryLog, logger *slog.Logger) *Notifier {
	return &Notifier{
		resolver: resolver,
		sender:   sender,
		log:      deliveryLog,
		logger:   logger,
	}
}

// Notify resolves the current configuration and delivers subject/html.
// The only error it returns is ErrNotConfigured; transient delivery failures
// are reported through the Outcome.
func (n *Notifier) Notify(ctx context.Context, subject, html string) (Outcome, error) {
	cfg := n.resolver.Resolve(ctx)
	to := splitRecipients(cfg.Recipient)
	if !cfg.HasCredentials() || len(to) == 0 {
		n.logger.Warn("email: skipping send, delivery not configured",
			"has_api_key", cfg.APIKey != "",
			"has_recipient", len(to) > 0,
		)
		return Outcome{}, ErrNotConfigured
	}

	out := n.sender.Send(ctx, cfg, Message{
		From:    cfg.From,
		To:      to,
		Subject: subject,
		HTML:    html,
	})

	if n.log != nil {
		// Use a context that survives the caller's cancellation so a timed-out
		// send is still recorded.
		if err := n.log.LogEmail(context.WithoutCancel(ctx), store.LogEmailParams{
			Recipient: cfg.Recipient,
			Subject:   subject,
			Sent:      out.Sent,
			Attempts:  out.Attempts,
			Error:     out.Error,
		}); err != nil {
			n.logger.Warn("email: could not record delivery", "error", err)
		}
	}

	return out, nil
}

// splitRecipients accepts a comma-separated recipient list, as admins tend to
// store several addresses in the one setting.
func splitRecipients(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
