package api

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// ─── BEARER AUTH ──────────────────────────────────────────────────────────────

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. It returns "" when the header is absent or uses another scheme.
func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// requireBearer is chi middleware that rejects requests whose bearer token
// does not satisfy check with 401 {"error":"unauthorized"}.
func (s *Server) requireBearer(check func(token string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !check(bearerToken(r)) {
				s.logger.Warn("rejected unauthorized request", "path", r.URL.Path, logField(r))
				respondErr(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) internalTokenOK(token string) bool {
	if s.cfg.InternalAPIToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.InternalAPIToken)) == 1
}

// ─── LOGGER MIDDLEWARE ────────────────────────────────────────────────────────

// loggerMiddleware logs each request with method, path, status, and duration.
func (s *Server) loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// ─── RESPONSE HELPERS ─────────────────────────────────────────────────────────

// respond writes a JSON body with the given status code.
func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// respondErr writes a standard JSON error envelope.
func respondErr(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"error": message})
}

// respondInternalErr logs an unexpected error and returns a 500 to the client
// without leaking internal details.
func (s *Server) respondInternalErr(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("internal error",
		"error", err,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
	)
	respondErr(w, http.StatusInternalServerError, "internal server error")
}

// logField returns a slog.Attr using the request ID for correlation.
func logField(r *http.Request) slog.Attr {
	return slog.String("request_id", middleware.GetReqID(r.Context()))
}
