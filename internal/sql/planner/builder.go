package planner

import (
	"fmt"

	"github.com/tuannm99/relstore/internal/catalog"
	"github.com/tuannm99/relstore/internal/record"
	"github.com/tuannm99/relstore/internal/sql/parser"
)

// BuildPlan builds a physical plan from an AST Statement. Plans that
// choose an access path consult the catalog for schemas and indexes.
func BuildPlan(stmt parser.Statement, db *catalog.Database) (Plan, error) {
	switch s := stmt.(type) {
	case *parser.CreateTableStmt:
		return buildCreateTablePlan(s)
	case *parser.InsertStmt:
		return buildInsertPlan(s)
	case *parser.SelectStmt:
		return buildSelectPlan(s, db)
	case *parser.UpdateStmt:
		return &UpdatePlan{TableName: s.TableName, Assignments: s.Assignments, Where: s.Where}, nil
	case *parser.DeleteStmt:
		return &DeletePlan{TableName: s.TableName, Where: s.Where}, nil
	case *parser.ShowTablesStmt:
		return &ShowTablesPlan{}, nil
	case *parser.DescribeStmt:
		return &DescribePlan{TableName: s.TableName}, nil
	default:
		return nil, fmt.Errorf("planner: unsupported statement type %T", stmt)
	}
}

func buildCreateTablePlan(s *parser.CreateTableStmt) (Plan, error) {
	var cols []record.Column
	for _, c := range s.Columns {
		colType, err := record.ParseColumnType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q has type %q", parser.ErrUnknownType, c.Name, c.Type)
		}
		cols = append(cols, record.Column{
			Name:    c.Name,
			Type:    colType,
			Primary: c.Primary,
			Unique:  c.Unique,
			Indexed: c.Indexed,
		})
	}
	return &CreateTablePlan{
		TableName: s.TableName,
		Schema:    record.Schema{Cols: cols},
	}, nil
}

func buildInsertPlan(s *parser.InsertStmt) (Plan, error) {
	return &InsertPlan{
		TableName: s.TableName,
		Columns:   s.Columns,
		Values:    s.Values,
	}, nil
}

func buildSelectPlan(s *parser.SelectStmt, db *catalog.Database) (Plan, error) {
	if s.Join != nil {
		return buildJoinPlan(s, db)
	}

	tbl, err := db.Table(s.TableName)
	if err != nil {
		return nil, err
	}
	if col, key, ok := eqLookup(tbl, s.Where); ok {
		return &IndexLookupPlan{
			TableName:  s.TableName,
			Column:     col,
			Key:        key,
			Projection: s.Columns,
		}, nil
	}
	return &SeqScanPlan{
		TableName:  s.TableName,
		Where:      s.Where,
		Projection: s.Columns,
	}, nil
}

func buildJoinPlan(s *parser.SelectStmt, db *catalog.Database) (Plan, error) {
	left, err := db.Table(s.TableName)
	if err != nil {
		return nil, err
	}
	if _, err := db.Table(s.Join.RightTable); err != nil {
		return nil, err
	}

	if col, ok := left.Schema.Col(s.Join.LeftColumn); ok && col.Indexed {
		return &IndexJoinPlan{
			LeftTable:   s.TableName,
			RightTable:  s.Join.RightTable,
			LeftColumn:  s.Join.LeftColumn,
			RightColumn: s.Join.RightColumn,
			Where:       s.Where,
			Projection:  s.Columns,
		}, nil
	}
	return &LoopJoinPlan{
		LeftTable:   s.TableName,
		RightTable:  s.Join.RightTable,
		LeftColumn:  s.Join.LeftColumn,
		RightColumn: s.Join.RightColumn,
		Where:       s.Where,
		Projection:  s.Columns,
	}, nil
}

// eqLookup reports whether the WHERE clause is a single equality on an
// indexed column whose literal already has the column's type. Anything
// else falls back to a scan.
func eqLookup(tbl *catalog.Table, w *parser.Predicate) (string, record.Value, bool) {
	if w == nil || len(w.Rest) > 0 || w.First.Op != "=" {
		return "", record.Value{}, false
	}
	col, ok := tbl.Schema.Col(w.First.Column)
	if !ok || !col.Indexed {
		return "", record.Value{}, false
	}
	key := LiteralValue(w.First.Value)
	if key.Type != col.Type {
		return "", record.Value{}, false
	}
	return col.Name, key, true
}

// LiteralValue converts a parsed predicate literal into a typed value.
// String literals lose their outer quotes here.
func LiteralValue(l *parser.Literal) record.Value {
	switch {
	case l.Str != nil:
		s := *l.Str
		return record.TextValue(s[1 : len(s)-1])
	case l.Bool != nil:
		return record.BoolValue(bool(*l.Bool))
	default:
		return record.IntValue(*l.Int)
	}
}
