package executor

import (
	"fmt"
	"sort"

	"github.com/tuannm99/relstore/internal/catalog"
	"github.com/tuannm99/relstore/internal/record"
	"github.com/tuannm99/relstore/internal/sql/parser"
	"github.com/tuannm99/relstore/internal/sql/planner"
)

func (e *Executor) execCreateTable(p *planner.CreateTablePlan) (*Result, error) {
	if _, err := e.db.CreateTable(p.TableName, p.Schema); err != nil {
		return nil, err
	}
	return &Result{Message: fmt.Sprintf("Table %s created", p.TableName)}, nil
}

// execInsert casts every literal and checks every constraint before
// the first write, so a failed INSERT leaves the table untouched.
func (e *Executor) execInsert(p *planner.InsertPlan) (*Result, error) {
	tbl, err := e.db.Table(p.TableName)
	if err != nil {
		return nil, err
	}
	if err := tbl.ValidateColumns(p.Columns); err != nil {
		return nil, err
	}

	row := make(record.Row, len(p.Columns))
	for i, name := range p.Columns {
		col, _ := tbl.Schema.Col(name)
		v, err := record.CastLiteral(p.Values[i], col.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		row[name] = v
	}

	for _, col := range tbl.Schema.Cols {
		if !col.Unique {
			continue
		}
		v, ok := row[col.Name]
		if !ok {
			continue
		}
		if err := tbl.CheckUnique(col.Name, v, -1); err != nil {
			return nil, err
		}
	}

	tbl.AppendRow(row)
	return &Result{Message: "Insert successful", AffectedRows: 1}, nil
}

// execUpdate runs in two phases: resolve assignments and the matching
// row set first, then write. Constraint failures abort before any row
// or index entry changes.
func (e *Executor) execUpdate(p *planner.UpdatePlan) (*Result, error) {
	tbl, err := e.db.Table(p.TableName)
	if err != nil {
		return nil, err
	}

	cols := make([]string, len(p.Assignments))
	for i, a := range p.Assignments {
		cols[i] = a.Column
	}
	if err := tbl.ValidateColumns(cols); err != nil {
		return nil, err
	}

	newVals := make([]record.Value, len(p.Assignments))
	for i, a := range p.Assignments {
		col, _ := tbl.Schema.Col(a.Column)
		v, err := record.CastLiteral(a.Value, col.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", a.Column, err)
		}
		newVals[i] = v
	}

	ids, err := e.matchIDs(tbl, p.Where)
	if err != nil {
		return nil, err
	}

	// Uniqueness must hold for the whole batch up front. Writing the
	// same unique value to several rows can never satisfy it.
	for i, a := range p.Assignments {
		col, _ := tbl.Schema.Col(a.Column)
		if !col.Unique {
			continue
		}
		if len(ids) > 1 {
			return nil, fmt.Errorf("%w: cannot set unique column %q on %d rows",
				catalog.ErrConstraint, a.Column, len(ids))
		}
		for _, id := range ids {
			if err := tbl.CheckUnique(a.Column, newVals[i], id); err != nil {
				return nil, err
			}
		}
	}

	for _, id := range ids {
		row := tbl.Rows[id]
		for i, a := range p.Assignments {
			if ix, ok := tbl.Indexes[a.Column]; ok {
				if old, present := row[a.Column]; present {
					ix.Remove(old, id)
				}
				ix.Insert(newVals[i], id)
			}
			row[a.Column] = newVals[i]
		}
	}

	return &Result{
		Message:      fmt.Sprintf("%d rows updated", len(ids)),
		AffectedRows: int64(len(ids)),
	}, nil
}

func (e *Executor) execDelete(p *planner.DeletePlan) (*Result, error) {
	tbl, err := e.db.Table(p.TableName)
	if err != nil {
		return nil, err
	}

	ids, err := e.matchIDs(tbl, p.Where)
	if err != nil {
		return nil, err
	}

	// Highest id first, so earlier removals never renumber a row that
	// is still pending removal.
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))
	for _, id := range ids {
		tbl.RemoveRow(id)
	}

	return &Result{
		Message:      fmt.Sprintf("%d rows deleted", len(ids)),
		AffectedRows: int64(len(ids)),
	}, nil
}

// matchIDs collects the ids of rows satisfying the predicate, in row
// order, before any mutation happens.
func (e *Executor) matchIDs(tbl *catalog.Table, w *parser.Predicate) ([]int, error) {
	var ids []int
	for id, row := range tbl.Rows {
		ok, err := evalPredicate(w, row)
		if err != nil {
			return nil, err
		}
		if ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
