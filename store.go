// Package relstore is a single-process in-memory SQL store with
// equality indexes and full-snapshot JSON persistence.
package relstore

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/tuannm99/relstore/internal/catalog"
	"github.com/tuannm99/relstore/internal/snapshot"
	"github.com/tuannm99/relstore/internal/sql/executor"
)

// SnapshotFile is the snapshot name inside a store's working directory.
const SnapshotFile = "relstore.json"

// Store is the top-level facade. One mutex serializes every statement,
// so a Store is safe for concurrent use and readers never observe a
// half-applied mutation.
type Store struct {
	mu    sync.Mutex
	db    *catalog.Database
	exec  *executor.Executor
	snaps *snapshot.Manager
}

// Open loads the snapshot under workdir, or starts empty when there is
// none. An unreadable snapshot also starts empty with a warning; the
// broken file stays in place until the first mutation overwrites it.
func Open(workdir string) *Store {
	m := snapshot.NewManager(filepath.Join(workdir, SnapshotFile))
	db, err := m.Load()
	if err != nil {
		slog.Warn("relstore: snapshot load failed, starting empty", "path", m.Path(), "error", err)
		db = catalog.NewDatabase()
	}
	return &Store{
		db:    db,
		exec:  executor.New(db, m),
		snaps: m,
	}
}

// NewMemory is a store without persistence.
func NewMemory() *Store {
	db := catalog.NewDatabase()
	return &Store{db: db, exec: executor.New(db, nil)}
}

// Execute runs one SQL statement.
func (s *Store) Execute(sql string) (*executor.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exec.ExecSQL(sql)
}

// ListTables returns table names in creation order.
func (s *Store) ListTables() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.ListTables()
}

// DescribeTable reports a table's schema, row count and indexed
// columns.
func (s *Store) DescribeTable(name string) (*catalog.TableInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Describe(name)
}

// Close writes a final snapshot when the store persists. Memory-only
// stores close without touching the filesystem.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snaps == nil {
		return nil
	}
	return s.snaps.Save(s.db)
}
