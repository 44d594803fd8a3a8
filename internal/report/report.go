// Package report aggregates classified transactions into monthly figures.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens/internal/model"
)

var hundred = decimal.NewFromInt(100)

// CategoryStat is one category's share of total expense.
type CategoryStat struct {
	Amount     decimal.Decimal
	Percentage decimal.Decimal // 0..100, relative to TotalExpense
}

// MonthlyReport is the aggregate of a set of transactions.
type MonthlyReport struct {
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	NetBalance        decimal.Decimal // income - expense, may be negative
	ExpenseByCategory map[string]CategoryStat
}

// CategoryLine is a CategoryStat with its label, for ordered output.
type CategoryLine struct {
	Category string
	CategoryStat
}

// GenerateMonthlyReport sums income and expense and breaks expense down by
// category. Income never appears in the breakdown. An empty input yields a
// zero report with an empty breakdown.
func GenerateMonthlyReport(txns []model.Transaction) *MonthlyReport {
	income := decimal.Zero
	for _, t := range txns {
		if t.IsIncome() {
			income = income.Add(t.Amount)
		}
	}
	byCategory, expense := distribution(txns)
	return &MonthlyReport{
		TotalIncome:       income,
		TotalExpense:      expense,
		NetBalance:        income.Sub(expense),
		ExpenseByCategory: byCategory,
	}
}

// CategoryDistribution returns only the expense breakdown of txns.
func CategoryDistribution(txns []model.Transaction) map[string]CategoryStat {
	byCategory, _ := distribution(txns)
	return byCategory
}

func distribution(txns []model.Transaction) (map[string]CategoryStat, decimal.Decimal) {
	sums := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, t := range txns {
		if !t.IsExpense() {
			continue
		}
		category := t.Category
		if category == "" {
			category = model.Uncategorized
		}
		sums[category] = sums[category].Add(t.Amount)
		total = total.Add(t.Amount)
	}

	out := make(map[string]CategoryStat, len(sums))
	for category, amount := range sums {
		pct := decimal.Zero
		if !total.IsZero() {
			pct = amount.Div(total).Mul(hundred)
		}
		out[category] = CategoryStat{Amount: amount, Percentage: pct}
	}
	return out, total
}

// SortedCategories returns the breakdown ordered by amount, largest first,
// then by label.
func SortedCategories(r *MonthlyReport) []CategoryLine {
	lines := make([]CategoryLine, 0, len(r.ExpenseByCategory))
	for category, stat := range r.ExpenseByCategory {
		lines = append(lines, CategoryLine{Category: category, CategoryStat: stat})
	}
	sort.Slice(lines, func(i, j int) bool {
		if c := lines[i].Amount.Cmp(lines[j].Amount); c != 0 {
			return c > 0
		}
		return lines[i].Category < lines[j].Category
	})
	return lines
}
