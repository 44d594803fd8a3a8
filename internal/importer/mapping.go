package importer

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// DefaultDateFormats are tried in order when a mapping names none. Month and
// day may be written with or without a leading zero.
var DefaultDateFormats = []string{"2006-1-2", "2006/1/2", "1/2/2006"}

// ColumnMapping names the statement columns holding each logical field and
// the literal markers used in the kind column.
type ColumnMapping struct {
	DateColumn        string   `mapstructure:"date_column" yaml:"date_column"`
	AmountColumn      string   `mapstructure:"amount_column" yaml:"amount_column"`
	DescriptionColumn string   `mapstructure:"description_column" yaml:"description_column"`
	KindColumn        string   `mapstructure:"kind_column" yaml:"kind_column"`
	IncomeKeyword     string   `mapstructure:"income_keyword" yaml:"income_keyword"`
	ExpenseKeyword    string   `mapstructure:"expense_keyword" yaml:"expense_keyword"`
	DateFormats       []string `mapstructure:"date_formats" yaml:"date_formats,omitempty"`
	Delimiter         string   `mapstructure:"delimiter" yaml:"delimiter,omitempty"`
}

// Validate checks that every required name is present.
func (m ColumnMapping) Validate() error {
	required := []struct {
		name, value string
	}{
		{"date_column", m.DateColumn},
		{"amount_column", m.AmountColumn},
		{"description_column", m.DescriptionColumn},
		{"kind_column", m.KindColumn},
		{"income_keyword", m.IncomeKeyword},
		{"expense_keyword", m.ExpenseKeyword},
	}
	var errs []error
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.name))
		}
	}
	if m.IncomeKeyword != "" && m.IncomeKeyword == m.ExpenseKeyword {
		errs = append(errs, fmt.Errorf("income_keyword and expense_keyword must differ (both %q)", m.IncomeKeyword))
	}
	if m.Delimiter != "" && utf8.RuneCountInString(m.Delimiter) != 1 {
		errs = append(errs, fmt.Errorf("delimiter must be a single character, got %q", m.Delimiter))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid column mapping: %w", errors.Join(errs...))
	}
	return nil
}

// Columns returns the mapped column names in date, amount, description, kind order.
func (m ColumnMapping) Columns() []string {
	return []string{m.DateColumn, m.AmountColumn, m.DescriptionColumn, m.KindColumn}
}

func (m ColumnMapping) dateFormats() []string {
	if len(m.DateFormats) == 0 {
		return DefaultDateFormats
	}
	return m.DateFormats
}

func (m ColumnMapping) comma() rune {
	if m.Delimiter == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(m.Delimiter)
	return r
}
