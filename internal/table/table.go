// Package table is the tabular boundary between the ledger engine and
// whatever renders it: ordered rows with named, typed columns, independent
// of any output technology.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Kind is the value type of a column.
type Kind string

const (
	String  Kind = "string"
	Decimal Kind = "decimal"
	Date    Kind = "date"
)

// Column is one named, typed column.
type Column struct {
	Name string
	Kind Kind
}

// Table is an ordered row set. Cells are pre-formatted strings; the column
// Kind tells renderers how to align or parse them.
type Table struct {
	Title   string
	Columns []Column
	Rows    [][]string
}

// New creates an empty table with the given title and columns.
func New(title string, columns ...Column) *Table {
	return &Table{Title: title, Columns: columns}
}

// AddRow appends one row. The cell count must match the column count.
func (t *Table) AddRow(cells ...string) {
	if len(cells) != len(t.Columns) {
		panic(fmt.Sprintf("table %q: row has %d cells, want %d", t.Title, len(cells), len(t.Columns)))
	}
	t.Rows = append(t.Rows, cells)
}

// Headers returns the column names in order.
func (t *Table) Headers() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// WriteCSV writes the table (header first) as CSV.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(t.Headers()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
