package fts

import (
	"fmt"
	"sort"

	"ftscli/internal/errors"
)

// Table is the transient, in-memory result of one API fetch: ordered named
// columns over row-major scalar cells (string, json.Number, bool, time.Time
// or nil). A table may carry a promoted index column; otherwise rows are
// identified by position.
type Table struct {
	Columns   []string
	Rows      [][]interface{}
	Index     []interface{}
	IndexName string
}

// NewTable creates an empty table with the given column set
func NewTable(columns []string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// tableFromRecords materializes decoded JSON objects as a table. Columns
// follow the canonical schema order; keys the schema doesn't know about are
// appended in sorted order so the column set stays deterministic. Fields
// missing from a record become nil cells.
func tableFromRecords(records []map[string]interface{}, schema Schema) *Table {
	columns := append([]string(nil), schema.Columns...)

	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}

	extraSet := make(map[string]bool)
	for _, record := range records {
		for key := range record {
			if !known[key] && !extraSet[key] {
				extraSet[key] = true
			}
		}
	}
	extras := make([]string, 0, len(extraSet))
	for key := range extraSet {
		extras = append(extras, key)
	}
	sort.Strings(extras)
	columns = append(columns, extras...)

	table := NewTable(columns)
	for _, record := range records {
		row := make([]interface{}, len(columns))
		for i, col := range columns {
			row[i] = record[col]
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// IsEmpty reports whether the table has zero rows
func (t *Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// ColumnIndex returns the position of a named column
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, col := range t.Columns {
		if col == name {
			return i, true
		}
	}
	return 0, false
}

// Column returns the cells of a named column
func (t *Table) Column(name string) ([]interface{}, bool) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, false
	}
	values := make([]interface{}, 0, len(t.Rows))
	for _, row := range t.Rows {
		values = append(values, row[idx])
	}
	return values, true
}

// SetIndex promotes the named column to the row index and removes it from
// the regular columns. It is a no-op on empty tables and on tables that do
// not carry the column, which is what happens with empty API results.
func (t *Table) SetIndex(name string) {
	if t.IsEmpty() {
		return
	}
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return
	}

	t.Index = make([]interface{}, 0, len(t.Rows))
	for i, row := range t.Rows {
		t.Index = append(t.Index, row[idx])
		t.Rows[i] = append(row[:idx:idx], row[idx+1:]...)
	}
	t.Columns = append(t.Columns[:idx:idx], t.Columns[idx+1:]...)
	t.IndexName = name
}

// RenameColumn renames a column in place. Missing columns are left alone.
func (t *Table) RenameColumn(from, to string) {
	if idx, ok := t.ColumnIndex(from); ok {
		t.Columns[idx] = to
	}
}

// Concat appends the rows of every non-nil table into a single table sharing
// the first table's column schema, preserving input order. All tables must
// have identical column sets and index names; a mismatch is rejected rather
// than silently coerced.
func Concat(tables []*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, errors.NewValidationError("cannot concatenate zero tables")
	}

	first := tables[0]
	result := &Table{
		Columns:   append([]string(nil), first.Columns...),
		IndexName: first.IndexName,
	}

	for _, t := range tables {
		if !columnsEqual(first.Columns, t.Columns) || first.IndexName != t.IndexName {
			return nil, errors.NewValidationError(
				fmt.Sprintf("column schema mismatch: %v (index %q) vs %v (index %q)",
					first.Columns, first.IndexName, t.Columns, t.IndexName))
		}
		result.Rows = append(result.Rows, t.Rows...)
		result.Index = append(result.Index, t.Index...)
	}

	return result, nil
}

// FilterEmpty returns the tables that have at least one row, preserving order
func FilterEmpty(tables []*Table) []*Table {
	var nonEmpty []*Table
	for _, t := range tables {
		if !t.IsEmpty() {
			nonEmpty = append(nonEmpty, t)
		}
	}
	return nonEmpty
}

func columnsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
