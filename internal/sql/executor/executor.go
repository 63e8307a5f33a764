package executor

import (
	"fmt"
	"log/slog"

	"github.com/tuannm99/relstore/internal/catalog"
	"github.com/tuannm99/relstore/internal/sql/parser"
	"github.com/tuannm99/relstore/internal/sql/planner"
)

// Persister writes a full snapshot of the database after a mutating
// statement. A nil Persister keeps the store memory-only.
type Persister interface {
	Save(db *catalog.Database) error
}

// Executor runs SQL statements against a catalog. It does no locking
// of its own; the caller serializes statements.
type Executor struct {
	db      *catalog.Database
	persist Persister
}

func New(db *catalog.Database, p Persister) *Executor {
	return &Executor{db: db, persist: p}
}

// ExecSQL is the top-level entry: SQL string -> Result.
//
// A successful mutation triggers a snapshot write. The write is best
// effort: on failure the statement still succeeds and the miss is
// logged, leaving the in-memory state ahead of the file.
func (e *Executor) ExecSQL(sql string) (*Result, error) {
	stmt, err := parser.Parse(sql)
	if err != nil {
		return nil, err
	}

	plan, err := planner.BuildPlan(stmt, e.db)
	if err != nil {
		return nil, err
	}

	res, err := e.execPlan(plan)
	if err != nil {
		return nil, err
	}

	if e.persist != nil && isMutation(plan) {
		if err := e.persist.Save(e.db); err != nil {
			slog.Warn("executor: snapshot write failed, in-memory state kept", "error", err)
		}
	}
	return res, nil
}

func (e *Executor) execPlan(p planner.Plan) (*Result, error) {
	switch plan := p.(type) {
	case *planner.CreateTablePlan:
		return e.execCreateTable(plan)
	case *planner.InsertPlan:
		return e.execInsert(plan)

	case *planner.IndexLookupPlan:
		return e.execIndexLookup(plan)
	case *planner.SeqScanPlan:
		return e.execSeqScan(plan)
	case *planner.IndexJoinPlan:
		return e.execIndexJoin(plan)
	case *planner.LoopJoinPlan:
		return e.execLoopJoin(plan)

	case *planner.UpdatePlan:
		return e.execUpdate(plan)
	case *planner.DeletePlan:
		return e.execDelete(plan)

	case *planner.ShowTablesPlan:
		return e.execShowTables(plan)
	case *planner.DescribePlan:
		return e.execDescribe(plan)

	default:
		return nil, fmt.Errorf("executor: unsupported plan type %T", p)
	}
}

// isMutation reports whether a plan changes catalog state. Mutating
// statements snapshot even when they touch zero rows, so the file
// always reflects the last statement.
func isMutation(p planner.Plan) bool {
	switch p.(type) {
	case *planner.CreateTablePlan, *planner.InsertPlan, *planner.UpdatePlan, *planner.DeletePlan:
		return true
	}
	return false
}
