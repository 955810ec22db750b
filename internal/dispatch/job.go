package dispatch

import "github.com/pharmadesk/report-dispatch/internal/calendar"

// Job names a report type the dispatcher can trigger.
type Job string

const (
	JobDaily   Job = "daily"
	JobMonthly Job = "monthly"
	JobAnnual  Job = "annual"
)

// AllJobs lists every job in dispatch order.
var AllJobs = []Job{JobDaily, JobMonthly, JobAnnual}

// Path is the report-generation endpoint for the job.
func (j Job) Path() string {
	return "/api/cron/" + string(j) + "-report"
}

// DueSet records which jobs are due on a calendar date.
type DueSet struct {
	Daily   bool
	Monthly bool
	Annual  bool
}

// DueJobs computes the due set for today. Daily is always due; monthly on the
// last day of the month; annual on January 1st. January 1st is never a month
// end, so monthly and annual are never due together.
func DueJobs(today calendar.Date) DueSet {
	return DueSet{
		Daily:   true,
		Monthly: today.IsLastDayOfMonth(),
		Annual:  today.IsFirstOfJanuary(),
	}
}

// Jobs returns the due jobs in fixed dispatch order: daily, monthly, annual.
func (s DueSet) Jobs() []Job {
	jobs := make([]Job, 0, 3)
	if s.Daily {
		jobs = append(jobs, JobDaily)
	}
	if s.Monthly {
		jobs = append(jobs, JobMonthly)
	}
	if s.Annual {
		jobs = append(jobs, JobAnnual)
	}
	return jobs
}
