// Package insight adapts a monthly report to and from an external advisory
// service. It holds no business logic of its own: PrepareForExternal reshapes
// a report into a request and InterpretExternalResponse turns whatever comes
// back into a fixed-shape Insight.
package insight

import (
	"context"

	"github.com/spendlens/spendlens/internal/report"
)

// RequestType tags every request sent to an advisor.
const RequestType = "expense_analysis_and_advice"

// Texts used when a response is present but a field is missing.
const (
	NoAdvice     = "No specific advice provided."
	NoPrediction = "No specific prediction provided."
)

// Texts used when no advisory response is available at all.
const (
	UnavailableAdvice     = "External advice unavailable."
	UnavailablePrediction = "External prediction unavailable."
)

// Summary carries the report totals.
type Summary struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	NetBalance   float64 `json:"net_balance"`
}

// BreakdownItem is one category entry of the expense breakdown.
type BreakdownItem struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Request is the prompt-shaped view of a report.
type Request struct {
	MonthlySummary   Summary         `json:"monthly_summary"`
	ExpenseBreakdown []BreakdownItem `json:"expense_breakdown"`
	RequestType      string          `json:"request_type"`
}

// Response is what an advisor returns.
type Response struct {
	Status     string `json:"status,omitempty"`
	Advice     string `json:"advice,omitempty"`
	Prediction string `json:"prediction,omitempty"`
}

func (r *Response) empty() bool {
	return r == nil || (r.Status == "" && r.Advice == "" && r.Prediction == "")
}

// Insight is the final advisory result. Available is false when the texts are
// placeholders rather than advisor output.
type Insight struct {
	Advice     string `json:"llm_advice"`
	Prediction string `json:"llm_prediction"`
	Available  bool   `json:"available"`
}

// Advisor produces advice for a prepared request.
type Advisor interface {
	Advise(ctx context.Context, req Request) (*Response, error)
}

// PrepareForExternal projects r into a Request. The breakdown is ordered by
// amount, largest first, then by category.
func PrepareForExternal(r *report.MonthlyReport) Request {
	req := Request{
		MonthlySummary: Summary{
			TotalIncome:  r.TotalIncome.Round(2).InexactFloat64(),
			TotalExpense: r.TotalExpense.Round(2).InexactFloat64(),
			NetBalance:   r.NetBalance.Round(2).InexactFloat64(),
		},
		ExpenseBreakdown: []BreakdownItem{},
		RequestType:      RequestType,
	}
	for _, l := range report.SortedCategories(r) {
		req.ExpenseBreakdown = append(req.ExpenseBreakdown, BreakdownItem{
			Category:   l.Category,
			Amount:     l.Amount.Round(2).InexactFloat64(),
			Percentage: l.Percentage.Round(2).InexactFloat64(),
		})
	}
	return req
}

// InterpretExternalResponse converts resp into an Insight. A nil or empty
// response yields the unavailable placeholder; a missing field is replaced by
// a generic "not provided" text.
func InterpretExternalResponse(resp *Response) Insight {
	if resp.empty() {
		return Unavailable()
	}
	in := Insight{Advice: resp.Advice, Prediction: resp.Prediction, Available: true}
	if in.Advice == "" {
		in.Advice = NoAdvice
	}
	if in.Prediction == "" {
		in.Prediction = NoPrediction
	}
	return in
}

// Unavailable returns the placeholder insight.
func Unavailable() Insight {
	return Insight{Advice: UnavailableAdvice, Prediction: UnavailablePrediction}
}
