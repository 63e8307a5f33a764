package executor

import (
	"github.com/tuannm99/relstore/internal/catalog"
	"github.com/tuannm99/relstore/internal/record"
	"github.com/tuannm99/relstore/internal/sql/parser"
	"github.com/tuannm99/relstore/internal/sql/planner"
)

// execIndexJoin drives the join off the left column's index: for each
// distinct key the right table is scanned once, then every matching
// left row pairs with the collected right rows.
func (e *Executor) execIndexJoin(p *planner.IndexJoinPlan) (*Result, error) {
	left, err := e.db.Table(p.LeftTable)
	if err != nil {
		return nil, err
	}
	right, err := e.db.Table(p.RightTable)
	if err != nil {
		return nil, err
	}

	ix := left.Indexes[p.LeftColumn]
	var joined []record.Row
	for _, key := range ix.Keys() {
		var matches []record.Row
		for _, rrow := range right.Rows {
			if rv, ok := rrow[p.RightColumn]; ok && rv == key {
				matches = append(matches, rrow)
			}
		}
		if len(matches) == 0 {
			continue
		}
		for _, lid := range ix.Lookup(key) {
			for _, rrow := range matches {
				joined = append(joined, mergeRows(p.LeftTable, left.Rows[lid], p.RightTable, rrow))
			}
		}
	}

	return joinResult(joined, p.Where, p.Projection, joinColumns(p.LeftTable, left, p.RightTable, right, p.Projection))
}

// execLoopJoin is the nested-loop fallback. Rows missing the join
// column on either side simply never match.
func (e *Executor) execLoopJoin(p *planner.LoopJoinPlan) (*Result, error) {
	left, err := e.db.Table(p.LeftTable)
	if err != nil {
		return nil, err
	}
	right, err := e.db.Table(p.RightTable)
	if err != nil {
		return nil, err
	}

	var joined []record.Row
	for _, lrow := range left.Rows {
		lv, ok := lrow[p.LeftColumn]
		if !ok {
			continue
		}
		for _, rrow := range right.Rows {
			if rv, ok := rrow[p.RightColumn]; ok && rv == lv {
				joined = append(joined, mergeRows(p.LeftTable, lrow, p.RightTable, rrow))
			}
		}
	}

	return joinResult(joined, p.Where, p.Projection, joinColumns(p.LeftTable, left, p.RightTable, right, p.Projection))
}

// mergeRows builds one joined row with every column key prefixed by
// its table name.
func mergeRows(leftName string, lrow record.Row, rightName string, rrow record.Row) record.Row {
	out := make(record.Row, len(lrow)+len(rrow))
	for k, v := range lrow {
		out[leftName+"."+k] = v
	}
	for k, v := range rrow {
		out[rightName+"."+k] = v
	}
	return out
}

// joinResult applies WHERE to the joined rows, then the projection.
func joinResult(joined []record.Row, where *parser.Predicate, projection, columns []string) (*Result, error) {
	res := &Result{Columns: columns}
	for _, row := range joined {
		if where != nil {
			ok, err := evalPredicate(where, row)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		res.Rows = append(res.Rows, projectRow(row, projection))
	}
	res.AffectedRows = int64(len(res.Rows))
	return res, nil
}

func joinColumns(leftName string, left *catalog.Table, rightName string, right *catalog.Table, projection []string) []string {
	if !isStar(projection) {
		return projection
	}
	cols := make([]string, 0, left.Schema.NumCols()+right.Schema.NumCols())
	for _, name := range left.Schema.Names() {
		cols = append(cols, leftName+"."+name)
	}
	for _, name := range right.Schema.Names() {
		cols = append(cols, rightName+"."+name)
	}
	return cols
}
