package api

import (
	"log/slog"
	"net/http"
	"time"
)

// NewServerAt is NewServer with a fixed clock.
func NewServerAt(
	dispatcher Dispatcher,
	gen ReportGenerator,
	bills BillNumberer,
	pinger Pinger,
	cfg Config,
	logger *slog.Logger,
	now func() time.Time,
) http.Handler {
	return newServer(dispatcher, gen, bills, pinger, cfg, logger, now)
}
