package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
)

const utf8BOM = "\ufeff"

// Row is one data record of a statement keyed by header name.
type Row struct {
	Line   int // 1-based source line the record starts on; the header is line 1
	Fields map[string]string
}

// ParseFile opens path and extracts its rows. See ReadRows.
func ParseFile(path string, m ColumnMapping) ([]Row, error) {
	if path == "" {
		return nil, &FormatError{Reason: "file path is empty"}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &FormatError{Path: path, Reason: "file not found", Err: err}
		}
		return nil, &FormatError{Path: path, Reason: "opening file", Err: err}
	}
	defer f.Close()

	rows, err := ReadRows(f, m)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) && fe.Path == "" {
			fe.Path = path
		}
		return nil, err
	}
	return rows, nil
}

// ReadRows reads delimited text with a header line and returns one Row per
// record, in source order. Only structure is checked: every mapped column
// must appear in the header. Cell values are returned untouched.
func ReadRows(r io.Reader, m ColumnMapping) ([]Row, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	cr := csv.NewReader(skipBOM(r))
	cr.Comma = m.comma()
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &FormatError{Reason: "file is empty or has no header"}
	}
	if err != nil {
		return nil, &FormatError{Reason: "reading header", Err: err}
	}

	header = normalizeHeader(header)
	if isBlank(header) {
		return nil, &FormatError{Reason: "file is empty or has no header"}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, col := range m.Columns() {
		if _, ok := index[col]; !ok {
			return nil, &FormatError{Column: col}
		}
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &FormatError{Reason: "reading rows", Err: err}
		}
		line, _ := cr.FieldPos(0)

		fields := make(map[string]string, len(index))
		for name, i := range index {
			if i < len(rec) {
				fields[name] = rec[i]
			} else {
				fields[name] = ""
			}
		}
		rows = append(rows, Row{Line: line, Fields: fields})
	}
	return rows, nil
}

// skipBOM drops a leading UTF-8 byte order mark so that a quoted first
// header cell still parses as quoted.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, []byte(utf8BOM)) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func isBlank(header []string) bool {
	for _, h := range header {
		if h != "" {
			return false
		}
	}
	return true
}
