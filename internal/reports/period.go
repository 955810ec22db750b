package reports

import (
	"fmt"
	"time"

	"github.com/pharmadesk/report-dispatch/internal/calendar"
	"github.com/pharmadesk/report-dispatch/internal/dispatch"
)

// Period is a half-open reporting window [From, To) with a display label.
type Period struct {
	From  time.Time
	To    time.Time
	Label string
}

// PeriodFor returns the window a job covers when run on today. The annual
// report fires on January 1st and covers the year that just ended.
func PeriodFor(job dispatch.Job, today calendar.Date) (Period, error) {
	switch job {
	case dispatch.JobDaily:
		from, to := calendar.DayBounds(today)
		return Period{From: from, To: to, Label: from.Format("2 January 2006")}, nil
	case dispatch.JobMonthly:
		from, to := calendar.MonthBounds(today)
		return Period{From: from, To: to, Label: from.Format("January 2006")}, nil
	case dispatch.JobAnnual:
		from, to := calendar.YearBounds(today.Year - 1)
		return Period{From: from, To: to, Label: fmt.Sprintf("%d", today.Year-1)}, nil
	default:
		return Period{}, fmt.Errorf("reports: unknown job %q", job)
	}
}
