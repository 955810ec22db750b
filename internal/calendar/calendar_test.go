package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmadesk/report-dispatch/internal/calendar"
)

func TestToRegional_IgnoresInstantZone(t *testing.T) {
	// 2025-01-31 19:00 UTC is already 2025-02-01 00:30 in IST.
	utc := time.Date(2025, time.January, 31, 19, 0, 0, 0, time.UTC)

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	for _, inst := range []time.Time{utc, utc.In(ny), utc.In(time.FixedZone("X", -11*3600))} {
		got := calendar.ToRegional(inst)
		assert.Equal(t, calendar.Date{Year: 2025, Month: time.February, Day: 1}, got, "instant %s", inst)
	}
}

func TestToRegional_IgnoresHostLocal(t *testing.T) {
	saved := time.Local
	t.Cleanup(func() { time.Local = saved })
	time.Local = time.FixedZone("HOST", -8*3600)

	inst := time.Date(2025, time.March, 10, 18, 29, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10", calendar.ToRegional(inst).String())

	inst = inst.Add(time.Minute) // 18:30 UTC = midnight IST
	assert.Equal(t, "2025-03-11", calendar.ToRegional(inst).String())
}

func TestLastDayOfMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2025, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2025, time.January, 31},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, calendar.LastDayOfMonth(tc.year, tc.month), "%d-%02d", tc.year, tc.month)
	}
}

func TestIsLastDayOfMonth(t *testing.T) {
	cases := []struct {
		date calendar.Date
		want bool
	}{
		{calendar.Date{Year: 2024, Month: time.February, Day: 29}, true},
		{calendar.Date{Year: 2024, Month: time.February, Day: 28}, false},
		{calendar.Date{Year: 2025, Month: time.January, Day: 31}, true},
		{calendar.Date{Year: 2025, Month: time.January, Day: 30}, false},
		{calendar.Date{Year: 2025, Month: time.December, Day: 31}, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.date.IsLastDayOfMonth(), tc.date.String())
	}
}

func TestIsFirstOfJanuary(t *testing.T) {
	assert.True(t, calendar.Date{Year: 2026, Month: time.January, Day: 1}.IsFirstOfJanuary())
	assert.False(t, calendar.Date{Year: 2025, Month: time.December, Day: 31}.IsFirstOfJanuary())
	assert.False(t, calendar.Date{Year: 2026, Month: time.January, Day: 2}.IsFirstOfJanuary())
	assert.False(t, calendar.Date{Year: 2026, Month: time.February, Day: 1}.IsFirstOfJanuary())
}

func TestFormatting(t *testing.T) {
	d := calendar.Date{Year: 2025, Month: time.February, Day: 7}
	assert.Equal(t, "2025-02-07", d.String())
	assert.Equal(t, "20250207", d.Compact())
}

func TestBounds(t *testing.T) {
	d := calendar.Date{Year: 2024, Month: time.February, Day: 29}

	start, end := calendar.DayBounds(d)
	assert.Equal(t, time.Date(2024, time.February, 28, 18, 30, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, 24*time.Hour, end.Sub(start))

	start, end = calendar.MonthBounds(d)
	assert.Equal(t, "2024-02-01", calendar.ToRegional(start).String())
	assert.Equal(t, "2024-03-01", calendar.ToRegional(end).String())

	start, end = calendar.YearBounds(2025)
	assert.Equal(t, "2025-01-01", calendar.ToRegional(start).String())
	assert.Equal(t, "2026-01-01", calendar.ToRegional(end).String())
}

func TestAddDays(t *testing.T) {
	d := calendar.Date{Year: 2026, Month: time.January, Day: 1}
	assert.Equal(t, "2025-12-31", d.AddDays(-1).String())
	assert.Equal(t, "2024-03-01", calendar.NewDate(2024, time.February, 29).AddDays(1).String())
}

func TestParseDate(t *testing.T) {
	d, err := calendar.ParseDate("2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2025, time.January, 31), d)
	assert.True(t, d.IsLastDayOfMonth())

	for _, bad := range []string{"", "2025-1-31", "2025-02-30", "31/01/2025"} {
		_, err := calendar.ParseDate(bad)
		assert.Error(t, err, bad)
	}
}
