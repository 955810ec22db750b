// Package api implements the HTTP layer for the report dispatch service.
// Handlers are methods on *Server. Each handler file is responsible for one
// resource group and only imports the dependencies it actually uses.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pharmadesk/report-dispatch/internal/calendar"
	"github.com/pharmadesk/report-dispatch/internal/dispatch"
	"github.com/pharmadesk/report-dispatch/internal/email"
	"github.com/pharmadesk/report-dispatch/internal/reports"
)

// Config holds values read from environment variables at startup.
type Config struct {
	// InternalAPIToken guards the bill-number endpoint. When empty the route
	// is not mounted.
	InternalAPIToken string
}

// Dispatcher runs the daily fan-out and checks cron credentials.
type Dispatcher interface {
	Run(ctx context.Context, credential string) (dispatch.Result, error)
	Authorized(credential string) bool
}

// ReportGenerator builds and sends one report.
type ReportGenerator interface {
	Generate(ctx context.Context, job dispatch.Job, today calendar.Date) (reports.Summary, email.Outcome, error)
}

// BillNumberer issues the next bill number for today.
type BillNumberer interface {
	Next(ctx context.Context) (string, error)
}

// Pinger reports database reachability for /healthz. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server holds all shared dependencies. Each handler file attaches methods to
// this type and uses only the fields it needs.
type Server struct {
	dispatcher Dispatcher
	reports    ReportGenerator
	bills      BillNumberer
	db         Pinger

	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// NewServer constructs the Server and wires the chi router. The returned
// http.Handler is ready to pass to an http.Server. pinger may be nil.
func NewServer(
	dispatcher Dispatcher,
	gen ReportGenerator,
	bills BillNumberer,
	pinger Pinger,
	cfg Config,
	logger *slog.Logger,
) http.Handler {
	return newServer(dispatcher, gen, bills, pinger, cfg, logger, time.Now)
}

func newServer(
	dispatcher Dispatcher,
	gen ReportGenerator,
	bills BillNumberer,
	pinger Pinger,
	cfg Config,
	logger *slog.Logger,
	now func() time.Time,
) http.Handler {
	s := &Server{
		dispatcher: dispatcher,
		reports:    gen,
		bills:      bills,
		db:         pinger,
		cfg:        cfg,
		logger:     logger,
		now:        now,
	}

	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	// No global timeout: a dispatch run waits on up to three report jobs.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(middleware.Recoverer)

	// ── Health ────────────────────────────────────────────────────────────────
	r.Get("/healthz", s.handleHealth)

	// ── API ───────────────────────────────────────────────────────────────────
	r.Route("/api", func(r chi.Router) {

		// Trigger: authenticates inside the dispatcher.
		r.Post("/cron/dispatch", s.handleDispatch)

		// Report jobs use the same secret as the trigger.
		r.Group(func(r chi.Router) {
			r.Use(s.requireBearer(s.dispatcher.Authorized))
			for _, job := range dispatch.AllJobs {
				r.Post("/cron/"+string(job)+"-report", s.handleReport(job))
			}
		})

		// Bill numbering, internal callers only.
		if s.cfg.InternalAPIToken != "" && s.bills != nil {
			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(15 * time.Second))
				r.Use(s.requireBearer(s.internalTokenOK))
				r.Post("/bills/next-number", s.handleNextBillNumber)
			})
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("healthz: database unreachable", "error", err, logField(r))
			respondErr(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}
