package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens/internal/model"
)

var amountNoise = strings.NewReplacer(
	",", "",
	" ", "",
	"\u00a0", "",
	"¥", "",
	"￥", "",
	"$", "",
	"£", "",
	"€", "",
)

// Build turns a raw row into a Transaction. It never drops a row silently:
// any field it cannot interpret comes back as a *ValidationError.
func Build(row Row, m ColumnMapping) (model.Transaction, error) {
	rawDate := row.Fields[m.DateColumn]
	date, err := parseDate(rawDate, m.dateFormats())
	if err != nil {
		return model.Transaction{}, &ValidationError{Row: row.Line, Field: "date", Value: rawDate, Err: err}
	}

	rawAmount := row.Fields[m.AmountColumn]
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return model.Transaction{}, &ValidationError{Row: row.Line, Field: "amount", Value: rawAmount, Err: err}
	}

	rawKind := row.Fields[m.KindColumn]
	var kind model.Kind
	switch strings.TrimSpace(rawKind) {
	case m.IncomeKeyword:
		kind = model.KindIncome
	case m.ExpenseKeyword:
		kind = model.KindExpense
	default:
		return model.Transaction{}, &ValidationError{
			Row:   row.Line,
			Field: "kind",
			Value: rawKind,
			Err:   fmt.Errorf("expected %q or %q", m.IncomeKeyword, m.ExpenseKeyword),
		}
	}

	original := make(map[string]string, len(row.Fields))
	for k, v := range row.Fields {
		original[k] = v
	}

	return model.Transaction{
		Date:           date,
		Amount:         amount.Abs(),
		Description:    row.Fields[m.DescriptionColumn],
		Kind:           kind,
		Category:       model.Uncategorized,
		OriginalFields: original,
	}, nil
}

func parseDate(s string, formats []string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	var firstErr error
	for _, f := range formats {
		d, err := time.Parse(f, s)
		if err == nil {
			return d, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func parseAmount(s string) (decimal.Decimal, error) {
	clean := amountNoise.Replace(strings.TrimSpace(s))
	if clean == "" {
		return decimal.Zero, errors.New("empty amount")
	}
	return decimal.NewFromString(clean)
}
