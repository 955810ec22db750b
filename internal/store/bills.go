package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/pharmadesk/report-dispatch/internal/calendar"
	"github.com/pharmadesk/report-dispatch/internal/db"
)

// maxAllocateAttempts bounds re-runs of the allocation transaction after a
// serialization failure.
const maxAllocateAttempts = 3

// maxBillSequence mirrors the CHECK constraint on bill_sequences.last_seq.
const maxBillSequence = 9999

// ErrBillSequenceExhausted is returned when a calendar date has already issued
// every 4-digit sequence. The counter is left at its maximum.
var ErrBillSequenceExhausted = errors.New("store: bill sequence exhausted for date")

// AllocateBillNumber atomically increments and returns the per-day sequence
// for d. Sequences start at 1 and are strictly increasing per date; a
// rolled-back caller transaction elsewhere does not return its number, so
// gaps are possible.
func (s *Store) AllocateBillNumber(ctx context.Context, d calendar.Date) (int, error) {
	billDate := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)

	var seq int32
	var err error
	for attempt := 1; attempt <= maxAllocateAttempts; attempt++ {
		err = s.withTx(ctx, func(ctx context.Context, q db.Querier) error {
			n, err := q.IncrementBillSequence(ctx, billDate)
			if err != nil {
				return err
			}
			if n > maxBillSequence {
				return ErrBillSequenceExhausted
			}
			seq = n
			return nil
		})
		if err == nil || !isRetryable(err) {
			break
		}
	}

	switch {
	case err == nil:
		return int(seq), nil
	case errors.Is(err, ErrBillSequenceExhausted), pgCode(err) == pgerrcode.CheckViolation:
		return 0, fmt.Errorf("%w: %s", ErrBillSequenceExhausted, d)
	default:
		return 0, fmt.Errorf("store: allocate bill number for %s: %w", d, err)
	}
}
