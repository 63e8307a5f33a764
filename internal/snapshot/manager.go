package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/tuannm99/relstore/internal/catalog"
	"github.com/tuannm99/relstore/internal/record"
)

// tableSnapshot is the on-disk form of one table. The index section is
// written for inspection; loading always rebuilds indexes from the
// rows and ignores whatever the file claims.
type tableSnapshot struct {
	Columns []record.Column             `json:"columns"`
	Data    []record.Row                `json:"data"`
	Indexes map[string]map[string][]int `json:"indexes"`
}

// Manager reads and writes full-database snapshots at a fixed path.
type Manager struct {
	path string
}

func NewManager(path string) *Manager {
	return &Manager{path: path}
}

func (m *Manager) Path() string { return m.path }

// Save writes the whole database as one indented JSON document,
// replacing any previous snapshot.
func (m *Manager) Save(db *catalog.Database) error {
	names := db.ListTables()
	out := make(map[string]tableSnapshot, len(names))
	for _, name := range names {
		tbl, err := db.Table(name)
		if err != nil {
			return err
		}
		out[name] = tableSnapshot{
			Columns: tbl.Schema.Cols,
			Data:    append([]record.Row{}, tbl.Rows...),
			Indexes: indexSection(tbl),
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Load reads the snapshot back into a fresh database. A missing file
// means an empty database, not an error.
func (m *Manager) Load() (*catalog.Database, error) {
	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return catalog.NewDatabase(), nil
	}
	if err != nil {
		return nil, err
	}

	var tables map[string]tableSnapshot
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	db := catalog.NewDatabase()
	for _, name := range names {
		ts := tables[name]
		tbl, err := db.CreateTable(name, record.Schema{Cols: ts.Columns})
		if err != nil {
			return nil, err
		}
		tbl.Rows = ts.Data
		tbl.RebuildIndexes()
	}
	return db, nil
}

// indexSection renders each index as value string -> sorted row ids.
func indexSection(tbl *catalog.Table) map[string]map[string][]int {
	out := make(map[string]map[string][]int, len(tbl.Indexes))
	for col, ix := range tbl.Indexes {
		buckets := make(map[string][]int, ix.Len())
		for _, key := range ix.Keys() {
			buckets[key.String()] = ix.Lookup(key)
		}
		out[col] = buckets
	}
	return out
}
