package relstore

import (
	"github.com/tuannm99/relstore/internal/catalog"
	"github.com/tuannm99/relstore/internal/record"
	"github.com/tuannm99/relstore/internal/sql/executor"
)

// Aliases so callers work with results and rows without reaching into
// internal packages.
type (
	Result    = executor.Result
	Row       = record.Row
	Value     = record.Value
	TableInfo = catalog.TableInfo
)
