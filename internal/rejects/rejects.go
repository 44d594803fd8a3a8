// Package rejects records statement rows that failed validation so they can
// be fixed and re-imported.
package rejects

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spendlens/spendlens/internal/importer"
)

// Entry is one rejected row.
type Entry struct {
	Row    int    `json:"row"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// Header is the CSV header for rejected-row files.
const Header = "row,field,value,reason"

const (
	numFields = 4
	colRow    = 0
	colField  = 1
	colValue  = 2
	colReason = 3
)

// FromError converts a *importer.ValidationError anywhere in err's chain to
// an Entry.
func FromError(err error) (Entry, bool) {
	var ve *importer.ValidationError
	if !errors.As(err, &ve) {
		return Entry{}, false
	}
	reason := ve.Error()
	if ve.Err != nil {
		reason = ve.Err.Error()
	}
	return Entry{Row: ve.Row, Field: ve.Field, Value: ve.Value, Reason: reason}, true
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colRow] = strconv.Itoa(e.Row)
	row[colField] = e.Field
	row[colValue] = e.Value
	row[colReason] = e.Reason
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	n, err := strconv.Atoi(record[colRow])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing row number %q: %w", record[colRow], err)
	}

	return Entry{
		Row:    n,
		Field:  record[colField],
		Value:  record[colValue],
		Reason: record[colReason],
	}, nil
}

// Write writes entries as CSV, header first.
func Write(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes entries to path, replacing any existing file.
func WriteFile(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating rejects file: %w", err)
	}
	if err := Write(f, entries); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing rejects file: %w", err)
	}
	return nil
}

// Read returns all entries from path.
// Returns an empty slice if the file does not exist.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening rejects file: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rejects CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
