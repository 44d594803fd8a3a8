package importer

import "fmt"

// FormatError reports a structural problem with a statement source: it is
// missing, empty, unreadable as delimited text, or lacks a mapped column.
type FormatError struct {
	Path   string
	Column string // set when a mapped column is absent from the header
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := e.Reason
	if e.Column != "" {
		msg = fmt.Sprintf("missing required column %q in header", e.Column)
	}
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// ValidationError reports a row whose field could not be interpreted.
type ValidationError struct {
	Row   int    // source line of the record, header is line 1
	Field string // "date", "amount" or "kind"
	Value string // raw cell value
	Err   error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("row %d: %s %q", e.Row, e.Field, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Err }
