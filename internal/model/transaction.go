package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Uncategorized is the label of transactions no rule matched.
const Uncategorized = "Uncategorized"

// Kind is the direction of a transaction.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind converts a string to a Kind, rejecting anything but the two known values.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindIncome, KindExpense:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown transaction kind %q", s)
	}
}

// Transaction is one normalized row of a bank statement.
type Transaction struct {
	Date        time.Time       // calendar date, midnight UTC
	Amount      decimal.Decimal // magnitude, never negative; direction lives in Kind
	Description string
	Kind        Kind
	Category    string

	// OriginalFields is the raw source row keyed by column name. Kept for
	// tracing only; nothing downstream reads it.
	OriginalFields map[string]string
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool { return t.Kind == KindExpense }

// IsIncome reports whether the transaction is income.
func (t Transaction) IsIncome() bool { return t.Kind == KindIncome }

// WithCategory returns a copy of t labelled with category.
// An empty label falls back to Uncategorized.
func (t Transaction) WithCategory(category string) Transaction {
	if category == "" {
		category = Uncategorized
	}
	t.Category = category
	return t
}

// Month returns the "YYYY-MM" bucket the transaction falls in.
func (t Transaction) Month() string {
	return t.Date.Format("2006-01")
}
