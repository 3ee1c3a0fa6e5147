// Package csvtable reads CSV exports into header-keyed records and collects
// row-level problems instead of stopping at the first one.
package csvtable

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
)

var ErrEmpty = errors.New("file is empty or has no header row")

// Table is a parsed CSV file.
type Table struct {
	Header  []string
	Records []Record
}

// Record is one data row keyed by trimmed header name.
type Record struct {
	// Row is the 1-based data row number; the header is not counted.
	Row int
	// Line is the line in the source where the row starts.
	Line   int
	Fields map[string]string
}

// Get returns the raw value for a column.
func (r Record) Get(col string) (string, bool) {
	v, ok := r.Fields[col]
	return v, ok
}

// RowError is a problem with a single data row.
type RowError struct {
	Row int
	Msg string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Msg)
}

// ParseError carries every row problem found in a file.
type ParseError struct {
	Rows []*RowError
	err  error
}

func (e *ParseError) Error() string { return e.err.Error() }

func (e *ParseError) Unwrap() []error { return multierr.Errors(e.err) }

// Parse reads a CSV document whose first row is the header. Blank rows are
// skipped. When any row is malformed the table is still returned together
// with a *ParseError describing all of them.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(stripBOM(r))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = normalizeHeader(header)
	if isBlank(header) {
		return nil, ErrEmpty
	}

	t := &Table{Header: header}
	var errs error
	row := 0
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return nil, fmt.Errorf("read csv: %w", err)
			}
			row++
			errs = multierr.Append(errs, &RowError{Row: row, Msg: pe.Err.Error()})
			continue
		}
		if isBlank(fields) {
			continue
		}
		row++

		switch {
		case len(fields) < len(header):
			errs = multierr.Append(errs, &RowError{Row: row, Msg: fmt.Sprintf(
				"Too few fields: expected %d fields but parsed %d", len(header), len(fields))})
		case len(fields) > len(header):
			errs = multierr.Append(errs, &RowError{Row: row, Msg: fmt.Sprintf(
				"Too many fields: expected %d fields but parsed %d", len(header), len(fields))})
		}

		line, _ := cr.FieldPos(0)
		t.Records = append(t.Records, Record{Row: row, Line: line, Fields: zip(header, fields)})
	}

	if errs != nil {
		pe := &ParseError{err: errs}
		for _, e := range multierr.Errors(errs) {
			var re *RowError
			if errors.As(e, &re) {
				pe.Rows = append(pe.Rows, re)
			}
		}
		return t, pe
	}
	return t, nil
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && string(b) == "\xef\xbb\xbf" {
		_, _ = br.Discard(3)
	}
	return br
}

// normalizeHeader trims names and suffixes duplicates as name_1, name_2, ...
func normalizeHeader(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if n, dup := seen[h]; dup && h != "" {
			seen[h] = n + 1
			h = fmt.Sprintf("%s_%d", h, n+1)
		} else {
			seen[h] = 0
		}
		out[i] = h
	}
	return out
}

func zip(header, fields []string) map[string]string {
	m := make(map[string]string, len(header))
	for i, h := range header {
		if h == "" || i >= len(fields) {
			continue
		}
		m[h] = fields[i]
	}
	return m
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
