package catalog

import (
	"fmt"
	"slices"
	"sort"

	"github.com/tuannm99/relstore/internal/record"
)

// Table holds rows in insertion order; a row's id is its position and stays
// dense 0..n-1 across deletions. Indexes covers exactly the columns flagged
// indexed in the schema.
type Table struct {
	Name    string
	Schema  record.Schema
	Rows    []record.Row
	Indexes map[string]*Index
}

func NewTable(name string, schema record.Schema) *Table {
	t := &Table{
		Name:    name,
		Schema:  schema,
		Indexes: make(map[string]*Index),
	}
	for _, c := range schema.Cols {
		if c.Indexed {
			t.Indexes[c.Name] = NewIndex(c.Name)
		}
	}
	return t
}

// ValidateColumns fails if any name is not declared in the schema.
func (t *Table) ValidateColumns(names []string) error {
	for _, name := range names {
		if !t.Schema.Has(name) {
			return fmt.Errorf("%w: %q in table %q", ErrUnknownColumn, name, t.Name)
		}
	}
	return nil
}

// AppendRow adds row at the next id and indexes the columns it carries.
func (t *Table) AppendRow(row record.Row) int {
	id := len(t.Rows)
	t.Rows = append(t.Rows, row)
	for name, ix := range t.Indexes {
		if v, ok := row[name]; ok {
			ix.Insert(v, id)
		}
	}
	return id
}

// RemoveRow deletes the row at id: its own index entries go first, then the
// row, then every larger id in every index shifts down by one.
func (t *Table) RemoveRow(id int) {
	row := t.Rows[id]
	for name, ix := range t.Indexes {
		if v, ok := row[name]; ok {
			ix.Remove(v, id)
		}
	}
	t.Rows = slices.Delete(t.Rows, id, id+1)
	for _, ix := range t.Indexes {
		ix.ShiftAfter(id)
	}
}

// HasValue reports whether any row other than exclude holds v in column.
// An index on the column answers as an existence probe; otherwise the rows
// are scanned. Pass exclude < 0 to consider every row.
func (t *Table) HasValue(column string, v record.Value, exclude int) bool {
	if ix := t.Indexes[column]; ix != nil {
		for _, id := range ix.Lookup(v) {
			if id != exclude {
				return true
			}
		}
		return false
	}
	for id, row := range t.Rows {
		if id == exclude {
			continue
		}
		if rv, ok := row[column]; ok && rv == v {
			return true
		}
	}
	return false
}

// CheckUnique fails with ErrConstraint when v already exists in column in a
// row other than exclude.
func (t *Table) CheckUnique(column string, v record.Value, exclude int) error {
	if t.HasValue(column, v, exclude) {
		return fmt.Errorf("%w: duplicate value %s for column %q in table %q",
			ErrConstraint, v, column, t.Name)
	}
	return nil
}

// RebuildIndexes recreates every index from the current rows. Snapshot load
// uses this instead of trusting the file's index section.
func (t *Table) RebuildIndexes() {
	t.Indexes = make(map[string]*Index)
	for _, c := range t.Schema.Cols {
		if !c.Indexed {
			continue
		}
		ix := NewIndex(c.Name)
		for id, row := range t.Rows {
			if v, ok := row[c.Name]; ok {
				ix.Insert(v, id)
			}
		}
		t.Indexes[c.Name] = ix
	}
}

func (t *Table) RowCount() int { return len(t.Rows) }

// IndexedColumns returns the indexed column names, sorted.
func (t *Table) IndexedColumns() []string {
	cols := make([]string, 0, len(t.Indexes))
	for name := range t.Indexes {
		cols = append(cols, name)
	}
	sort.Strings(cols)
	return cols
}
