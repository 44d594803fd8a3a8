package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Header is the CSV header for category breakdown exports.
const Header = "category,amount,percentage"

const (
	numFields = 3
	colCat    = 0
	colAmount = 1
	colPct    = 2
)

// MarshalLine converts a CategoryLine to a CSV row.
func MarshalLine(l CategoryLine) []string {
	row := make([]string, numFields)
	row[colCat] = l.Category
	row[colAmount] = l.Amount.StringFixed(2)
	row[colPct] = l.Percentage.StringFixed(2)
	return row
}

// WriteCSV writes the expense breakdown of r, largest category first.
func WriteCSV(w io.Writer, r *MonthlyReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, l := range SortedCategories(r) {
		if err := cw.Write(MarshalLine(l)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
