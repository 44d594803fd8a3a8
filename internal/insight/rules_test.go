package insight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(income, expense float64, items ...BreakdownItem) Request {
	return Request{
		MonthlySummary:   Summary{TotalIncome: income, TotalExpense: expense, NetBalance: income - expense},
		ExpenseBreakdown: items,
		RequestType:      RequestType,
	}
}

func TestRuleAdvisor(t *testing.T) {
	tests := []struct {
		name        string
		req         Request
		contains    []string
		notContains []string
	}{
		{
			name:        "high dining share",
			req:         request(1000, 500, BreakdownItem{Category: "餐饮", Amount: 200, Percentage: 40}),
			contains:    []string{"餐饮 is 40.00% of your spending", "above the suggested 20%"},
			notContains: []string{"healthy"},
		},
		{
			name:     "low saving ratio",
			req:      request(1000, 950, BreakdownItem{Category: "购物", Amount: 950, Percentage: 100}),
			contains: []string{"You kept 5.00% of your income", "below the suggested 10%"},
		},
		{
			name:     "no income and negative balance",
			req:      request(0, 50, BreakdownItem{Category: "交通", Amount: 50, Percentage: 100}),
			contains: []string{"no income this period"},
		},
		{
			name:        "healthy",
			req:         request(1000, 300, BreakdownItem{Category: "餐饮", Amount: 60, Percentage: 20}, BreakdownItem{Category: "购物", Amount: 240, Percentage: 80}),
			contains:    []string{"healthy"},
			notContains: []string{"above the suggested"},
		},
		{
			name:     "empty report",
			req:      request(0, 0),
			contains: []string{"healthy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := NewRuleAdvisor().Advise(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, "success", resp.Status)
			for _, s := range tt.contains {
				assert.Contains(t, resp.Advice, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, resp.Advice, s)
			}
			assert.NotEmpty(t, resp.Prediction)
		})
	}
}

func TestRuleAdvisor_CustomDiningCategory(t *testing.T) {
	a := &RuleAdvisor{DiningCategory: "Dining", HighDiningThreshold: 0.5, LowSavingThreshold: 0}
	resp, err := a.Advise(context.Background(), request(100, 80, BreakdownItem{Category: "Dining", Amount: 60, Percentage: 75}))
	require.NoError(t, err)
	assert.Contains(t, resp.Advice, "Dining is 75.00%")
	assert.Contains(t, resp.Advice, "above the suggested 50%")
}

func TestRuleAdvisor_Prediction(t *testing.T) {
	resp, err := NewRuleAdvisor().Advise(context.Background(), request(1000, 500, BreakdownItem{Category: "餐饮", Amount: 200, Percentage: 40}))
	require.NoError(t, err)
	assert.Equal(t, "At the current rate, next month's spending will be about 500.00, led by 餐饮 at about 200.00.", resp.Prediction)

	resp, err = NewRuleAdvisor().Advise(context.Background(), request(0, 0))
	require.NoError(t, err)
	assert.Contains(t, resp.Prediction, "nothing to project")
}
