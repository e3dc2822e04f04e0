package fetcher

import (
	"encoding/csv"
	"io"
)

// RowReader yields one table row per call and io.EOF after the last row.
// *csv.Reader satisfies it.
type RowReader interface {
	Read() ([]string, error)
}

// CSVOptions configures the delimited-text reader.
type CSVOptions struct {
	Delimiter  rune // default ','
	Comment    rune // comment character (0 = none)
	LazyQuotes bool
	TrimSpace  bool // trim leading space of unquoted fields
}

// NewCSVReader returns a reader over delimited text. Rows may have a
// variable number of fields; short rows leave trailing columns empty.
func NewCSVReader(r io.Reader, opts CSVOptions) *csv.Reader {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.LazyQuotes = opts.LazyQuotes
	reader.TrimLeadingSpace = opts.TrimSpace
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false
	return reader
}

// SliceRows adapts in-memory rows to RowReader.
type SliceRows struct {
	rows [][]string
	pos  int
}

// NewSliceRows wraps rows. The slice is not copied.
func NewSliceRows(rows [][]string) *SliceRows {
	return &SliceRows{rows: rows}
}

// Read returns the next row or io.EOF.
func (s *SliceRows) Read() ([]string, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}
