// Package calendar converts instants into the pharmacy's regional calendar.
// The region runs on a fixed UTC+05:30 offset with no daylight saving, so
// every calculation here pins the zone explicitly and never consults the
// host's time.Local.
package calendar

import (
	"fmt"
	"time"
)

// Zone is the fixed regional offset (IST). There is no DST rule to apply.
var Zone = time.FixedZone("IST", 5*60*60+30*60)

// Date is a calendar day in the regional zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ToRegional returns the regional calendar date that contains t.
func ToRegional(t time.Time) Date {
	y, m, d := t.In(Zone).Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string as produced by String.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation("2006-01-02", s, Zone)
	if err != nil {
		return Date{}, fmt.Errorf("calendar: parse date %q: %w", s, err)
	}
	return ToRegional(t), nil
}

// NewDate builds a Date, normalising out-of-range values the same way
// time.Date does (e.g. Feb 30 becomes Mar 1 or 2).
func NewDate(year int, month time.Month, day int) Date {
	return ToRegional(time.Date(year, month, day, 0, 0, 0, 0, Zone))
}

// LastDayOfMonth returns the number of days in month of year.
func LastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, Zone).Day()
}

// IsLastDayOfMonth reports whether d is the final day of its month.
func (d Date) IsLastDayOfMonth() bool {
	return d.Day == LastDayOfMonth(d.Year, d.Month)
}

// IsFirstOfJanuary reports whether d is January 1st.
func (d Date) IsFirstOfJanuary() bool {
	return d.Month == time.January && d.Day == 1
}

// Start is midnight at the beginning of d in the regional zone.
func (d Date) Start() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, Zone)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return ToRegional(d.Start().AddDate(0, 0, n))
}

// String renders d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Compact renders d as YYYYMMDD.
func (d Date) Compact() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}

// DayBounds returns the half-open interval [start, end) covering d.
func DayBounds(d Date) (time.Time, time.Time) {
	start := d.Start()
	return start, start.AddDate(0, 0, 1)
}

// MonthBounds returns [start, end) for the month containing d.
func MonthBounds(d Date) (time.Time, time.Time) {
	start := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, Zone)
	return start, start.AddDate(0, 1, 0)
}

// YearBounds returns [start, end) for the given calendar year.
func YearBounds(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, Zone)
	return start, start.AddDate(1, 0, 0)
}
