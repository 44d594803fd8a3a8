package report

import "github.com/spendlens/spendlens/internal/model"

// Summary holds the single-transaction extremes of a period.
type Summary struct {
	Count           int
	LargestExpense  *model.Transaction
	SmallestExpense *model.Transaction // smallest non-zero expense
	LargestIncome   *model.Transaction
}

// Highlights finds the largest and smallest expense and the largest income.
// Ties keep the earliest transaction.
func Highlights(txns []model.Transaction) Summary {
	s := Summary{Count: len(txns)}
	for i := range txns {
		t := &txns[i]
		switch t.Kind {
		case model.KindExpense:
			if s.LargestExpense == nil || t.Amount.GreaterThan(s.LargestExpense.Amount) {
				s.LargestExpense = t
			}
			if !t.Amount.IsZero() && (s.SmallestExpense == nil || t.Amount.LessThan(s.SmallestExpense.Amount)) {
				s.SmallestExpense = t
			}
		case model.KindIncome:
			if s.LargestIncome == nil || t.Amount.GreaterThan(s.LargestIncome.Amount) {
				s.LargestIncome = t
			}
		}
	}
	return s
}
