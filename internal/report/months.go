package report

import (
	"sort"

	"github.com/spendlens/spendlens/internal/model"
)

// MonthBucket groups the transactions of one calendar month.
type MonthBucket struct {
	Month        string // "YYYY-MM"
	Transactions []model.Transaction
}

// SplitByMonth groups txns by calendar month, oldest first. Within a month
// the input order is kept.
func SplitByMonth(txns []model.Transaction) []MonthBucket {
	index := make(map[string]int)
	var buckets []MonthBucket
	for _, t := range txns {
		m := t.Month()
		i, ok := index[m]
		if !ok {
			i = len(buckets)
			index[m] = i
			buckets = append(buckets, MonthBucket{Month: m})
		}
		buckets[i].Transactions = append(buckets[i].Transactions, t)
	}
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Month < buckets[j].Month })
	return buckets
}

// FilterMonth returns the transactions falling in month ("YYYY-MM").
func FilterMonth(txns []model.Transaction, month string) []model.Transaction {
	var out []model.Transaction
	for _, t := range txns {
		if t.Month() == month {
			out = append(out, t)
		}
	}
	return out
}
