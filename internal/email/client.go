// Package email delivers report notifications. It has three layers:
//
//   - Transport: one network call to the delivery provider (Resend).
//   - Sender: a bounded retry loop with linearly increasing delay around a
//     Transport. It never returns an error; every terminal state is an Outcome.
//   - Notifier: resolves the delivery configuration, refuses to send when
//     credentials are missing, then hands off to the Sender.
package email

import "context"

// Message is a single outbound email.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Transport performs one delivery attempt. A non-nil error is treated as
// transient by the Sender.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// TransportFactory builds a Transport for the given API key. The Sender calls
// it on every Send so a rotated key is picked up immediately.
type TransportFactory func(apiKey string) Transport

// Outcome is the terminal state of one Sender.Send call.
type Outcome struct {
	Sent     bool   `json:"sent"`
	Attempts int    `json:"attempts"`
	Error    string `json:"error,omitempty"`
}
