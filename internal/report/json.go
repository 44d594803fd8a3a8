package report

import "encoding/json"

type categoryJSON struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type reportJSON struct {
	TotalIncome       float64                 `json:"total_income"`
	TotalExpense      float64                 `json:"total_expense"`
	NetBalance        float64                 `json:"net_balance"`
	ExpenseByCategory map[string]categoryJSON `json:"expense_by_category"`
}

// MarshalJSON emits amounts as numbers rounded to cents and percentages
// rounded to four places.
func (r MonthlyReport) MarshalJSON() ([]byte, error) {
	out := reportJSON{
		TotalIncome:       r.TotalIncome.Round(2).InexactFloat64(),
		TotalExpense:      r.TotalExpense.Round(2).InexactFloat64(),
		NetBalance:        r.NetBalance.Round(2).InexactFloat64(),
		ExpenseByCategory: make(map[string]categoryJSON, len(r.ExpenseByCategory)),
	}
	for category, stat := range r.ExpenseByCategory {
		out.ExpenseByCategory[category] = categoryJSON{
			Amount:     stat.Amount.Round(2).InexactFloat64(),
			Percentage: stat.Percentage.Round(4).InexactFloat64(),
		}
	}
	return json.Marshal(out)
}
