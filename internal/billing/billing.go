// Package billing derives human-facing bill numbers of the form
// YYYYMMDD-NNNN from a regional calendar date and a per-day sequence.
//
// Formatting is pure. Allocation of the sequence belongs to the store; a
// Numberer glues the two together for callers that just want "the next bill
// number for today".
package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pharmadesk/report-dispatch/internal/calendar"
)

// MaxSequence is the largest per-day sequence that fits the 4-digit field.
const MaxSequence = 9999

// ErrSequenceOutOfRange is returned by Format when the sequence is not in
// 1..MaxSequence. Numbers are never widened past four digits or wrapped,
// since either would break the uniqueness and sort order of bill numbers.
var ErrSequenceOutOfRange = errors.New("billing: sequence out of range")

// Format renders d and seq as YYYYMMDD-NNNN.
func Format(d calendar.Date, seq int) (string, error) {
	if seq < 1 || seq > MaxSequence {
		return "", fmt.Errorf("%w: %d not in 1..%d", ErrSequenceOutOfRange, seq, MaxSequence)
	}
	return fmt.Sprintf("%s-%04d", d.Compact(), seq), nil
}

// Allocator hands out the next sequence for a calendar date. Implementations
// must guarantee strictly increasing values per date.
type Allocator interface {
	AllocateBillNumber(ctx context.Context, d calendar.Date) (int, error)
}

// Numberer issues formatted bill numbers for the current regional date.
type Numberer struct {
	alloc Allocator
	now   func() time.Time
}

// NewNumberer returns a Numberer backed by alloc.
func NewNumberer(alloc Allocator) *Numberer {
	return &Numberer{alloc: alloc, now: time.Now}
}

// Next allocates and formats the next bill number for today.
func (n *Numberer) Next(ctx context.Context) (string, error) {
	today := calendar.ToRegional(n.now())
	seq, err := n.alloc.AllocateBillNumber(ctx, today)
	if err != nil {
		return "", fmt.Errorf("billing: allocate sequence for %s: %w", today, err)
	}
	return Format(today, seq)
}
