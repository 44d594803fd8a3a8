package insight

import (
	"context"
	"fmt"
	"strings"
)

// Default thresholds for RuleAdvisor, as fractions.
const (
	DefaultDiningCategory      = "餐饮"
	DefaultHighDiningThreshold = 0.20
	DefaultLowSavingThreshold  = 0.10
)

// RuleAdvisor gives fixed-threshold advice without any network call.
type RuleAdvisor struct {
	DiningCategory      string
	HighDiningThreshold float64 // share of total expense, 0..1
	LowSavingThreshold  float64 // net balance / income, 0..1
}

// NewRuleAdvisor returns a RuleAdvisor with the default thresholds.
func NewRuleAdvisor() *RuleAdvisor {
	return &RuleAdvisor{
		DiningCategory:      DefaultDiningCategory,
		HighDiningThreshold: DefaultHighDiningThreshold,
		LowSavingThreshold:  DefaultLowSavingThreshold,
	}
}

// Advise implements Advisor.
func (a *RuleAdvisor) Advise(_ context.Context, req Request) (*Response, error) {
	var advice []string
	s := req.MonthlySummary

	dining := 0.0
	for _, item := range req.ExpenseBreakdown {
		if item.Category == a.DiningCategory {
			dining = item.Percentage
			break
		}
	}
	if limit := a.HighDiningThreshold * 100; dining > limit {
		advice = append(advice, fmt.Sprintf(
			"%s is %.2f%% of your spending, above the suggested %.0f%%. Consider cooking at home or ordering out less often.",
			a.DiningCategory, dining, limit))
	}

	switch {
	case s.TotalIncome > 0:
		ratio := s.NetBalance / s.TotalIncome
		if ratio < a.LowSavingThreshold {
			advice = append(advice, fmt.Sprintf(
				"You kept %.2f%% of your income, below the suggested %.0f%%. Review your spending and set a savings plan.",
				ratio*100, a.LowSavingThreshold*100))
		}
	case s.NetBalance < 0:
		advice = append(advice, "There was no income this period but there was spending. Keep an eye on your funds.")
	}

	if len(advice) == 0 {
		advice = append(advice, "Your finances look healthy and your spending is well balanced. Keep it up!")
	}

	return &Response{
		Status:     "success",
		Advice:     strings.Join(advice, "\n"),
		Prediction: predict(req),
	}, nil
}

func predict(req Request) string {
	if req.MonthlySummary.TotalExpense == 0 {
		return "No spending recorded, so there is nothing to project."
	}
	p := fmt.Sprintf("At the current rate, next month's spending will be about %.2f", req.MonthlySummary.TotalExpense)
	if len(req.ExpenseBreakdown) > 0 {
		top := req.ExpenseBreakdown[0]
		p += fmt.Sprintf(", led by %s at about %.2f", top.Category, top.Amount)
	}
	return p + "."
}
