package billing

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthKeyLayout formats a bill date into its calendar-month group key
const MonthKeyLayout = "2006-01"

// MonthlySummary aggregates the bills issued in one calendar month.
// Revenue and Tax are rounded to whole units; Count is exact.
type MonthlySummary struct {
	Month   string
	Revenue decimal.Decimal
	Count   int
	Tax     decimal.Decimal
}

// SummarizeByMonth groups bills by the year-month of their date (UTC) and
// returns one summary per month in ascending order. Months without bills are omitted.
func SummarizeByMonth(bills []Bill) []MonthlySummary {
	type acc struct {
		revenue decimal.Decimal
		tax     decimal.Decimal
		count   int
	}

	groups := make(map[string]*acc)
	for i := range bills {
		key := MonthKey(bills[i].Date)
		totals := bills[i].Totals()

		g, ok := groups[key]
		if !ok {
			g = &acc{revenue: decimal.Zero, tax: decimal.Zero}
			groups[key] = g
		}
		g.revenue = g.revenue.Add(totals.Total)
		g.tax = g.tax.Add(totals.Tax)
		g.count++
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthlySummary, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		out = append(out, MonthlySummary{
			Month:   k,
			Revenue: g.revenue.Round(0),
			Count:   g.count,
			Tax:     g.tax.Round(0),
		})
	}
	return out
}

// MonthKey returns the YYYY-MM key of t in UTC
func MonthKey(t time.Time) string {
	return t.UTC().Format(MonthKeyLayout)
}

// StatementLine is one bill in a customer statement
type StatementLine struct {
	BillID        uuid.UUID
	BillNumber    string
	Date          time.Time
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentStatus PaymentStatus
}

// BuildStatement turns bills (already ordered) into statement lines and the
// outstanding balance: the sum of totals over pending bills.
func BuildStatement(bills []Bill) ([]StatementLine, decimal.Decimal) {
	lines := make([]StatementLine, 0, len(bills))
	outstanding := decimal.Zero

	for i := range bills {
		b := &bills[i]
		totals := b.Totals()
		lines = append(lines, StatementLine{
			BillID:        b.ID,
			BillNumber:    b.BillNumber,
			Date:          b.Date,
			Subtotal:      totals.Subtotal,
			Tax:           totals.Tax,
			Total:         totals.Total,
			PaymentStatus: b.PaymentStatus,
		})
		if b.IsPending() {
			outstanding = outstanding.Add(totals.Total)
		}
	}
	return lines, outstanding
}

// SummaryCache holds the monthly summaries of an account between bill mutations.
//
// Every Invalidate advances the account's generation. Get reports the
// generation it observed, hit or miss, and Set stores only when the
// generation is still the same, so summaries computed from bills read
// before a mutation are never cached after it.
type SummaryCache interface {
	// Get returns ok=false on a miss
	Get(ctx context.Context, accountID uuid.UUID) (summaries []MonthlySummary, generation int64, ok bool, err error)
	// Set is a no-op when the account was invalidated after generation was read
	Set(ctx context.Context, accountID uuid.UUID, generation int64, summaries []MonthlySummary) error
	Invalidate(ctx context.Context, accountID uuid.UUID) error
}
