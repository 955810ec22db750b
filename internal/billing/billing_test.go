package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmadesk/report-dispatch/internal/calendar"
)

func TestFormat(t *testing.T) {
	got, err := Format(calendar.Date{Year: 2025, Month: time.February, Day: 17}, 7)
	require.NoError(t, err)
	assert.Equal(t, "20250217-0007", got)

	got, err = Format(calendar.Date{Year: 2025, Month: time.December, Day: 1}, MaxSequence)
	require.NoError(t, err)
	assert.Equal(t, "20251201-9999", got)
}

func TestFormat_OutOfRange(t *testing.T) {
	d := calendar.Date{Year: 2025, Month: time.December, Day: 1}
	for _, seq := range []int{0, -1, 10000, 123456} {
		got, err := Format(d, seq)
		assert.ErrorIs(t, err, ErrSequenceOutOfRange, "seq %d", seq)
		assert.Empty(t, got)
	}
}

type stubAllocator struct {
	seq  int
	err  error
	date calendar.Date
}

func (s *stubAllocator) AllocateBillNumber(_ context.Context, d calendar.Date) (int, error) {
	s.date = d
	return s.seq, s.err
}

func TestNumberer_UsesRegionalDate(t *testing.T) {
	alloc := &stubAllocator{seq: 42}
	n := NewNumberer(alloc)
	// 20:00 UTC on Feb 16 is already Feb 17 in the regional zone.
	n.now = func() time.Time { return time.Date(2025, time.February, 16, 20, 0, 0, 0, time.UTC) }

	got, err := n.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "20250217-0042", got)
	assert.Equal(t, "2025-02-17", alloc.date.String())
}

func TestNumberer_AllocatorError(t *testing.T) {
	boom := errors.New("db down")
	n := NewNumberer(&stubAllocator{err: boom})

	_, err := n.Next(context.Background())
	assert.ErrorIs(t, err, boom)
}
