// Package reports builds the daily, monthly and annual sales summaries and
// hands them to the email notifier. These are the endpoints the dispatcher
// fans out to.
package reports

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pharmadesk/report-dispatch/internal/calendar"
	"github.com/pharmadesk/report-dispatch/internal/db"
	"github.com/pharmadesk/report-dispatch/internal/dispatch"
	"github.com/pharmadesk/report-dispatch/internal/email"
)

// topItemLimit caps the best-seller table in each report.
const topItemLimit = 10

// SalesReader is the subset of db.Querier the generator reads from.
type SalesReader interface {
	GetSalesSummary(ctx context.Context, arg db.GetSalesSummaryParams) (db.GetSalesSummaryRow, error)
	GetTopItems(ctx context.Context, arg db.GetTopItemsParams) ([]db.GetTopItemsRow, error)
}

// Notifier delivers a rendered report.
type Notifier interface {
	Notify(ctx context.Context, subject, html string) (email.Outcome, error)
}

// TopItem is one best-selling medicine in the period.
type TopItem struct {
	Name         string `json:"name"`
	Quantity     int64  `json:"quantity"`
	RevenuePaise int64  `json:"revenuePaise"`
}

// Summary is the data behind one report email.
type Summary struct {
	Job           dispatch.Job `json:"job"`
	Period        string       `json:"period"`
	BillCount     int64        `json:"billCount"`
	GrossPaise    int64        `json:"grossPaise"`
	DiscountPaise int64        `json:"discountPaise"`
	TaxPaise      int64        `json:"taxPaise"`
	TopItems      []TopItem    `json:"topItems"`
}

// NetPaise is gross sales less discounts.
func (s Summary) NetPaise() int64 {
	return s.GrossPaise - s.DiscountPaise
}

// Generator builds and sends reports.
type Generator struct {
	sales    SalesReader
	notifier Notifier
	logger   *slog.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(sales SalesReader, notifier Notifier, logger *slog.Logger) *Generator {
	return &Generator{sales: sales, notifier: notifier, logger: logger}
}

// Generate loads the sales figures for job's period, renders them and sends
// the email. The returned error is non-nil when the figures could not be
// loaded or delivery was not attempted (email.ErrNotConfigured). A delivery
// that exhausted its attempts returns a nil error and an Outcome with
// Sent == false.
func (g *Generator) Generate(ctx context.Context, job dispatch.Job, today calendar.Date) (Summary, email.Outcome, error) {
	period, err := PeriodFor(job, today)
	if err != nil {
		return Summary{}, email.Outcome{}, err
	}

	row, err := g.sales.GetSalesSummary(ctx, db.GetSalesSummaryParams{
		FromTime: period.From,
		ToTime:   period.To,
	})
	if err != nil {
		return Summary{}, email.Outcome{}, fmt.Errorf("reports: load %s summary: %w", job, err)
	}

	items, err := g.sales.GetTopItems(ctx, db.GetTopItemsParams{
		FromTime: period.From,
		ToTime:   period.To,
		RowLimit: topItemLimit,
	})
	if err != nil {
		return Summary{}, email.Outcome{}, fmt.Errorf("reports: load %s top items: %w", job, err)
	}

	sum := Summary{
		Job:           job,
		Period:        period.Label,
		BillCount:     row.BillCount,
		GrossPaise:    row.GrossPaise,
		DiscountPaise: row.DiscountPaise,
		TaxPaise:      row.TaxPaise,
		TopItems:      make([]TopItem, 0, len(items)),
	}
	for _, it := range items {
		sum.TopItems = append(sum.TopItems, TopItem{
			Name:         it.MedicineName,
			Quantity:     it.Quantity,
			RevenuePaise: it.RevenuePaise,
		})
	}

	out, err := g.notifier.Notify(ctx, Subject(sum), RenderHTML(sum))
	if err != nil {
		if errors.Is(err, email.ErrNotConfigured) {
			g.logger.Warn("reports: delivery not configured", "job", job)
		}
		return sum, out, err
	}

	g.logger.Info("reports: report processed",
		"job", job,
		"period", sum.Period,
		"bills", sum.BillCount,
		"sent", out.Sent,
		"attempts", out.Attempts,
	)
	return sum, out, nil
}
