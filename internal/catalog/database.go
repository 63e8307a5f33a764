package catalog

import (
	"errors"
	"fmt"

	"github.com/tuannm99/relstore/internal/record"
)

var (
	ErrTableExists   = errors.New("catalog: table already exists")
	ErrTableNotFound = errors.New("catalog: table not found")
	ErrUnknownColumn = errors.New("catalog: unknown column")
	ErrConstraint    = errors.New("catalog: constraint violation")
)

// Database is the table registry. It carries no synchronization; callers
// serialize access (see the relstore.Store facade).
type Database struct {
	tables map[string]*Table
	names  []string // creation order
}

func NewDatabase() *Database {
	return &Database{tables: make(map[string]*Table)}
}

// CreateTable registers a table. Names are expected lowercase; the parser
// folds them.
func (db *Database) CreateTable(name string, schema record.Schema) (*Table, error) {
	if _, ok := db.tables[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrTableExists, name)
	}
	t := NewTable(name, schema)
	db.tables[name] = t
	db.names = append(db.names, name)
	return t, nil
}

func (db *Database) Table(name string) (*Table, error) {
	t, ok := db.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}
	return t, nil
}

// ListTables returns table names in creation order.
func (db *Database) ListTables() []string {
	out := make([]string, len(db.names))
	copy(out, db.names)
	return out
}

// TableInfo is the read-only introspection view of one table.
type TableInfo struct {
	Name           string          `json:"name"`
	Columns        []record.Column `json:"columns"`
	RowCount       int             `json:"row_count"`
	IndexedColumns []string        `json:"indexed_columns"`
}

func (db *Database) Describe(name string) (*TableInfo, error) {
	t, err := db.Table(name)
	if err != nil {
		return nil, err
	}
	return &TableInfo{
		Name:           t.Name,
		Columns:        t.Schema.Cols,
		RowCount:       t.RowCount(),
		IndexedColumns: t.IndexedColumns(),
	}, nil
}
