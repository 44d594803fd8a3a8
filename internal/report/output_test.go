package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens/internal/model"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, GenerateMonthlyReport(sampleTransactions())))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, strings.Split(Header, ","), records[0])
	assert.Equal(t, []string{"购物", "150.00", "45.45"}, records[1])
	assert.Equal(t, []string{"餐饮", "80.00", "24.24"}, records[2])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, GenerateMonthlyReport(nil)))
	assert.Equal(t, Header+"\n", buf.String())
}

func TestRenderText(t *testing.T) {
	color.NoColor = true

	txns := []model.Transaction{
		txn(1, "50.00", "午餐_外卖", model.KindExpense, "餐饮"),
		txn(3, "200.00", "工资_兼职", model.KindIncome, "收入"),
	}
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, GenerateMonthlyReport(txns), Highlights(txns)))

	out := buf.String()
	assert.Contains(t, out, "Total income:")
	assert.Contains(t, out, "200.00")
	assert.Contains(t, out, "150.00")
	assert.Contains(t, out, "餐饮")
	assert.Contains(t, out, "100.00%")
	assert.Contains(t, out, "Largest expense:  50.00 (午餐_外卖, 2023-10-01)")
	assert.NotContains(t, out, "No expense data found.")
}

func TestRenderText_NoExpenses(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, GenerateMonthlyReport(nil), Highlights(nil)))

	out := buf.String()
	assert.Contains(t, out, "No expense data found.")
	assert.Contains(t, out, "Largest expense:  -")
}
