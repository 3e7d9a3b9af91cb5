// Package table implements the in-memory table model and its delimited-text
// codec. A table is an ordered sequence of rows under a header row; columns
// are positional, and transforms select them by index rather than by name.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	clierrors "github.com/dlisz/coldrop/internal/errors"
)

// Table holds a fully loaded delimited-text table. Header carries the column
// names in order; every row has exactly len(Header) fields.
type Table struct {
	Header []string
	Rows   [][]string
}

// NumRows returns the number of data rows (the header is not counted).
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.Header)
}

// Read parses a delimited-text table from r. The first record is the header;
// the csv reader enforces a consistent field count across rows.
func Read(r io.Reader, comma rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, clierrors.NewUserError(
			"empty input: expected a header row",
			"The first line of the input must name the columns",
		)
	}

	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// ReadFile loads a table from path. I/O errors are returned as-is; malformed
// input is reported as a ParseError naming the path and line.
func ReadFile(path string, comma rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	t, err := Read(f, comma)
	if err != nil {
		return nil, wrapParseError(path, err)
	}
	return t, nil
}

// Write emits the table to w: header first, then rows, one record per line,
// no synthetic index column.
func (t *Table) Write(w io.Writer, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	if err := cw.Write(t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the table to path, creating or truncating it.
func (t *Table) WriteFile(path string, comma rune) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := t.Write(f, comma); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// DropColumns returns a new table with count columns removed starting at
// index start (0-based). Row order, the order of the remaining columns, and
// all cell values are unchanged. Dropping every remaining column is rejected:
// a zero-column table cannot be represented in delimited text.
func (t *Table) DropColumns(start, count int) (*Table, error) {
	if err := validateDropRange(t.NumCols(), start, count); err != nil {
		return nil, err
	}

	out := &Table{
		Header: dropFields(t.Header, start, count),
		Rows:   make([][]string, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		out.Rows = append(out.Rows, dropFields(row, start, count))
	}
	return out, nil
}

// validateDropRange checks a positional drop against a table of cols columns.
func validateDropRange(cols, start, count int) error {
	if start < 0 {
		return clierrors.NewValidationError("--index", "must be non-negative")
	}
	if count < 1 {
		return clierrors.NewValidationError("--count", "must be at least 1")
	}
	if cols == 0 {
		return clierrors.NewUserError(
			"table has no columns",
			"The input must contain a header row with at least one column",
		)
	}
	if start+count > cols {
		return clierrors.NewUserError(
			fmt.Sprintf("cannot drop columns %d..%d: table has only %d column(s)", start, start+count-1, cols),
			"Lower --index or --count to stay within the table",
		)
	}
	if count == cols {
		return clierrors.NewUserError(
			fmt.Sprintf("dropping %d column(s) would leave the table with no columns", count),
			"A delimited-text table cannot represent rows without columns; keep at least one",
		)
	}
	return nil
}

// dropFields copies rec without the count fields starting at start. It never
// aliases rec, so callers may reuse the input slice.
func dropFields(rec []string, start, count int) []string {
	out := make([]string, 0, len(rec)-count)
	out = append(out, rec[:start]...)
	out = append(out, rec[start+count:]...)
	return out
}

func wrapParseError(path string, err error) error {
	if pe, ok := err.(*csv.ParseError); ok {
		return &clierrors.ParseError{Path: path, Line: pe.Line, Err: pe.Err}
	}
	return err
}
