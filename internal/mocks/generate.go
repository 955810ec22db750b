// Package mocks provides gomock implementations of the delivery and dispatch
// ports for unit tests.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	tr := mocks.NewMockTransport(ctrl)
//	tr.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
package mocks

// Generate mock for the email Transport interface:
// Send
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=email_transport_mock.go github.com/pharmadesk/report-dispatch/internal/email Transport

// Generate mock for the dispatch Trigger interface:
// Trigger
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=dispatch_trigger_mock.go github.com/pharmadesk/report-dispatch/internal/dispatch Trigger
