package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens/internal/model"
)

func TestHighlights(t *testing.T) {
	s := Highlights(sampleTransactions())

	assert.Equal(t, 8, s.Count)
	require.NotNil(t, s.LargestExpense)
	assert.Equal(t, "购物", s.LargestExpense.Description)
	require.NotNil(t, s.SmallestExpense)
	assert.Equal(t, "未知消费", s.SmallestExpense.Description)
	require.NotNil(t, s.LargestIncome)
	assert.Equal(t, "工资", s.LargestIncome.Description)
}

func TestHighlights_SkipsZeroForSmallest(t *testing.T) {
	s := Highlights([]model.Transaction{
		txn(1, "0", "waived", model.KindExpense, "Fees"),
		txn(2, "5", "coffee", model.KindExpense, "Dining"),
	})
	require.NotNil(t, s.SmallestExpense)
	assert.Equal(t, "coffee", s.SmallestExpense.Description)
}

func TestHighlights_TieKeepsEarliest(t *testing.T) {
	s := Highlights([]model.Transaction{
		txn(1, "10", "first", model.KindExpense, "A"),
		txn(2, "10", "second", model.KindExpense, "A"),
	})
	assert.Equal(t, "first", s.LargestExpense.Description)
	assert.Equal(t, "first", s.SmallestExpense.Description)
}

func TestHighlights_Empty(t *testing.T) {
	s := Highlights(nil)
	assert.Zero(t, s.Count)
	assert.Nil(t, s.LargestExpense)
	assert.Nil(t, s.SmallestExpense)
	assert.Nil(t, s.LargestIncome)
}

func TestSplitByMonth(t *testing.T) {
	day := func(y int, m time.Month, d int, desc string) model.Transaction {
		return model.Transaction{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Description: desc, Kind: model.KindExpense}
	}
	txns := []model.Transaction{
		day(2023, time.November, 2, "nov-a"),
		day(2023, time.October, 30, "oct-a"),
		day(2023, time.November, 1, "nov-b"),
		day(2022, time.December, 31, "dec"),
	}

	buckets := SplitByMonth(txns)
	require.Len(t, buckets, 3)
	assert.Equal(t, "2022-12", buckets[0].Month)
	assert.Equal(t, "2023-10", buckets[1].Month)
	assert.Equal(t, "2023-11", buckets[2].Month)

	require.Len(t, buckets[2].Transactions, 2)
	assert.Equal(t, "nov-a", buckets[2].Transactions[0].Description)
	assert.Equal(t, "nov-b", buckets[2].Transactions[1].Description)

	nov := FilterMonth(txns, "2023-11")
	assert.Len(t, nov, 2)
	assert.Empty(t, FilterMonth(txns, "2024-01"))
	assert.Empty(t, SplitByMonth(nil))
}
