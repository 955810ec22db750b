package reports

import (
	"fmt"
	"html"
	"strings"

	"github.com/pharmadesk/report-dispatch/internal/dispatch"
)

// Subject is the email subject line for a summary.
func Subject(s Summary) string {
	switch s.Job {
	case dispatch.JobMonthly:
		return fmt.Sprintf("Monthly sales report · %s", s.Period)
	case dispatch.JobAnnual:
		return fmt.Sprintf("Annual sales report · %s", s.Period)
	default:
		return fmt.Sprintf("Daily sales report · %s", s.Period)
	}
}

// RenderHTML renders a summary as a self-contained HTML email body.
func RenderHTML(s Summary) string {
	var rows strings.Builder
	if len(s.TopItems) == 0 {
		rows.WriteString(`    <tr><td colspan="3" style="padding: 6px 0; color: #6b7280;">No sales in this period.</td></tr>` + "\n")
	}
	for _, it := range s.TopItems {
		fmt.Fprintf(&rows,
			`    <tr><td style="padding: 6px 0;">%s</td><td style="text-align: right;">%d</td><td style="text-align: right;">%s</td></tr>`+"\n",
			html.EscapeString(it.Name), it.Quantity, FormatRupees(it.RevenuePaise))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: sans-serif; color: #1a1a1a; max-width: 560px; margin: 0 auto; padding: 24px;">
  <h2 style="margin-bottom: 8px;">%s</h2>
  <table style="width: 100%%; border-collapse: collapse; margin: 16px 0;">
    <tr><td>Bills</td><td style="text-align: right;"><strong>%d</strong></td></tr>
    <tr><td>Gross sales</td><td style="text-align: right;"><strong>%s</strong></td></tr>
    <tr><td>Discounts</td><td style="text-align: right;">%s</td></tr>
    <tr><td>Net sales</td><td style="text-align: right;"><strong>%s</strong></td></tr>
    <tr><td>Tax collected</td><td style="text-align: right;">%s</td></tr>
  </table>
  <h3 style="margin-bottom: 8px;">Top items</h3>
  <table style="width: 100%%; border-collapse: collapse;">
    <tr style="color: #6b7280; font-size: 14px;"><th style="text-align: left;">Medicine</th><th style="text-align: right;">Qty</th><th style="text-align: right;">Revenue</th></tr>
%s  </table>
  <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 32px 0;">
  <p style="color: #9ca3af; font-size: 12px;">
    Automated report · Times are in IST
  </p>
</body>
</html>`,
		html.EscapeString(Subject(s)),
		s.BillCount,
		FormatRupees(s.GrossPaise),
		FormatRupees(s.DiscountPaise),
		FormatRupees(s.NetPaise()),
		FormatRupees(s.TaxPaise),
		rows.String(),
	)
}

// FormatRupees renders an amount in paise with Indian digit grouping,
// e.g. 12345678 -> "₹1,23,456.78".
func FormatRupees(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	rupees := fmt.Sprintf("%d", paise/100)

	// Last three digits, then groups of two.
	var grouped string
	if len(rupees) <= 3 {
		grouped = rupees
	} else {
		head, tail := rupees[:len(rupees)-3], rupees[len(rupees)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		parts = append([]string{head}, parts...)
		grouped = strings.Join(parts, ",") + "," + tail
	}
	return fmt.Sprintf("%s₹%s.%02d", sign, grouped, paise%100)
}
