package api

import (
	"errors"
	"net/http"

	"github.com/pharmadesk/report-dispatch/internal/billing"
	"github.com/pharmadesk/report-dispatch/internal/store"
)

// handleNextBillNumber allocates today's next bill number. 409 once the
// day's sequence is used up.
func (s *Server) handleNextBillNumber(w http.ResponseWriter, r *http.Request) {
	number, err := s.bills.Next(r.Context())
	switch {
	case errors.Is(err, store.ErrBillSequenceExhausted), errors.Is(err, billing.ErrSequenceOutOfRange):
		respondErr(w, http.StatusConflict, "bill sequence exhausted for today")
		return
	case err != nil:
		s.respondInternalErr(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"billNumber": number})
}
