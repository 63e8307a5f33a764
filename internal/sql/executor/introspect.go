package executor

import (
	"fmt"

	"github.com/tuannm99/relstore/internal/record"
	"github.com/tuannm99/relstore/internal/sql/planner"
)

func (e *Executor) execShowTables(_ *planner.ShowTablesPlan) (*Result, error) {
	res := &Result{Columns: []string{"table"}}
	for _, name := range e.db.ListTables() {
		res.Rows = append(res.Rows, record.Row{"table": record.TextValue(name)})
	}
	res.AffectedRows = int64(len(res.Rows))
	return res, nil
}

func (e *Executor) execDescribe(p *planner.DescribePlan) (*Result, error) {
	info, err := e.db.Describe(p.TableName)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Columns: []string{"column", "type", "primary", "unique", "indexed"},
		Message: fmt.Sprintf("Table %s: %d rows", info.Name, info.RowCount),
	}
	for _, col := range info.Columns {
		res.Rows = append(res.Rows, record.Row{
			"column":  record.TextValue(col.Name),
			"type":    record.TextValue(col.Type.String()),
			"primary": record.BoolValue(col.Primary),
			"unique":  record.BoolValue(col.Unique),
			"indexed": record.BoolValue(col.Indexed),
		})
	}
	res.AffectedRows = int64(len(res.Rows))
	return res, nil
}
