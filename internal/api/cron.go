package api

import (
	"errors"
	"net/http"

	"github.com/pharmadesk/report-dispatch/internal/calendar"
	"github.com/pharmadesk/report-dispatch/internal/dispatch"
	"github.com/pharmadesk/report-dispatch/internal/email"
	"github.com/pharmadesk/report-dispatch/internal/reports"
)

// handleDispatch runs the daily fan-out. 401 on a bad secret, otherwise 200
// when every due job succeeded and 207 when any failed.
func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	res, err := s.dispatcher.Run(r.Context(), bearerToken(r))
	if errors.Is(err, dispatch.ErrUnauthorized) {
		respondErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err != nil {
		s.respondInternalErr(w, r, err)
		return
	}
	respond(w, res.HTTPStatus(), res)
}

type reportResponse struct {
	Job      dispatch.Job    `json:"job"`
	Period   string          `json:"period"`
	Summary  reports.Summary `json:"summary"`
	Delivery email.Outcome   `json:"delivery"`
}

// handleReport generates and emails one report. 200 when sent, 412 when
// delivery is not configured, 502 when every send attempt failed.
//
// The optional "date" query parameter (YYYY-MM-DD) is the regional date the
// dispatcher found the job due on. Without it the current regional date is
// used.
func (s *Server) handleReport(job dispatch.Job) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		today := calendar.ToRegional(s.now())
		if raw := r.URL.Query().Get("date"); raw != "" {
			d, err := calendar.ParseDate(raw)
			if err != nil {
				respondErr(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
				return
			}
			today = d
		}

		sum, out, err := s.reports.Generate(r.Context(), job, today)
		switch {
		case errors.Is(err, email.ErrNotConfigured):
			respond(w, http.StatusPreconditionFailed, map[string]any{
				"error": err.Error(),
				"job":   job,
				"sent":  false,
			})
			return
		case err != nil:
			s.respondInternalErr(w, r, err)
			return
		}

		body := reportResponse{Job: job, Period: sum.Period, Summary: sum, Delivery: out}
		if !out.Sent {
			s.logger.Error("report delivery exhausted",
				"job", job,
				"attempts", out.Attempts,
				"error", out.Error,
				logField(r),
			)
			respond(w, http.StatusBadGateway, body)
			return
		}
		respond(w, http.StatusOK, body)
	}
}
