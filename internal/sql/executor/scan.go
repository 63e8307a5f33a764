package executor

import (
	"github.com/tuannm99/relstore/internal/catalog"
	"github.com/tuannm99/relstore/internal/record"
	"github.com/tuannm99/relstore/internal/sql/planner"
)

func (e *Executor) execSeqScan(p *planner.SeqScanPlan) (*Result, error) {
	tbl, err := e.db.Table(p.TableName)
	if err != nil {
		return nil, err
	}

	res := &Result{Columns: resultColumns(tbl, p.Projection)}
	for _, row := range tbl.Rows {
		if p.Where != nil {
			ok, err := evalPredicate(p.Where, row)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		res.Rows = append(res.Rows, projectRow(row, p.Projection))
	}
	res.AffectedRows = int64(len(res.Rows))
	return res, nil
}

// execIndexLookup serves a single-equality WHERE from the index. The
// lookup already is the whole predicate, so rows come back unfiltered.
func (e *Executor) execIndexLookup(p *planner.IndexLookupPlan) (*Result, error) {
	tbl, err := e.db.Table(p.TableName)
	if err != nil {
		return nil, err
	}

	res := &Result{Columns: resultColumns(tbl, p.Projection)}
	for _, id := range tbl.Indexes[p.Column].Lookup(p.Key) {
		res.Rows = append(res.Rows, projectRow(tbl.Rows[id], p.Projection))
	}
	res.AffectedRows = int64(len(res.Rows))
	return res, nil
}

// resultColumns is the output header: schema order for *, otherwise
// the projection as written.
func resultColumns(tbl *catalog.Table, projection []string) []string {
	if isStar(projection) {
		return tbl.Schema.Names()
	}
	return projection
}

// projectRow copies the row so results never alias table storage.
func projectRow(row record.Row, projection []string) record.Row {
	if isStar(projection) {
		return row.Clone()
	}
	return row.Project(projection)
}

func isStar(projection []string) bool {
	return len(projection) == 1 && projection[0] == "*"
}
