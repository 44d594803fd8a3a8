package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/spendlens/spendlens/internal/model"
)

var (
	headingColor  = color.New(color.Bold, color.FgCyan)
	positiveColor = color.New(color.FgGreen)
	negativeColor = color.New(color.FgRed)
)

// errWriter remembers the first write error so rendering code can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(c *color.Color, format string, args ...any) {
	if ew.err != nil {
		return
	}
	if c == nil {
		_, ew.err = fmt.Fprintf(ew.w, format, args...)
		return
	}
	_, ew.err = c.Fprintf(ew.w, format, args...)
}

// RenderText writes a human-readable report: totals, the category breakdown
// ordered by amount, and the period's extremes.
func RenderText(w io.Writer, r *MonthlyReport, s Summary) error {
	ew := &errWriter{w: w}

	ew.printf(headingColor, "--- Statement report ---\n")
	ew.printf(nil, "Total income:  %12s\n", r.TotalIncome.StringFixed(2))
	ew.printf(nil, "Total expense: %12s\n", r.TotalExpense.StringFixed(2))
	net := positiveColor
	if r.NetBalance.IsNegative() {
		net = negativeColor
	}
	ew.printf(nil, "Net balance:   ")
	ew.printf(net, "%12s\n", r.NetBalance.StringFixed(2))

	ew.printf(headingColor, "\n--- Expense by category ---\n")
	lines := SortedCategories(r)
	if len(lines) == 0 {
		ew.printf(nil, "No expense data found.\n")
	}
	for _, l := range lines {
		ew.printf(nil, "%-16s %12s (%6s%%)\n", l.Category, l.Amount.StringFixed(2), l.Percentage.StringFixed(2))
	}

	ew.printf(headingColor, "\n--- Highlights ---\n")
	ew.printf(nil, "Transactions:     %d\n", s.Count)
	ew.printf(nil, "Largest expense:  %s\n", describe(s.LargestExpense))
	ew.printf(nil, "Smallest expense: %s\n", describe(s.SmallestExpense))
	ew.printf(nil, "Largest income:   %s\n", describe(s.LargestIncome))

	return ew.err
}

func describe(t *model.Transaction) string {
	if t == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s, %s)", t.Amount.StringFixed(2), t.Description, t.Date.Format("2006-01-02"))
}
