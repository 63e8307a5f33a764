package planner

import (
	"github.com/tuannm99/relstore/internal/record"
	"github.com/tuannm99/relstore/internal/sql/parser"
)

// Plan is the interface for executable plans.
type Plan interface {
	planNode()
}

// ----- DDL / DML plan nodes -----

type CreateTablePlan struct {
	TableName string
	Schema    record.Schema
}

func (*CreateTablePlan) planNode() {}

type InsertPlan struct {
	TableName string
	Columns   []string
	Values    []string // raw literal tokens, cast at execution
}

func (*InsertPlan) planNode() {}

type UpdatePlan struct {
	TableName   string
	Assignments []parser.Assignment
	Where       *parser.Predicate
}

func (*UpdatePlan) planNode() {}

type DeletePlan struct {
	TableName string
	Where     *parser.Predicate
}

func (*DeletePlan) planNode() {}

// ----- Read plan nodes -----

// SeqScanPlan filters every row of one table against Where.
type SeqScanPlan struct {
	TableName  string
	Where      *parser.Predicate
	Projection []string
}

func (*SeqScanPlan) planNode() {}

// IndexLookupPlan answers a single-equality WHERE straight from the
// column's index. The lookup is the whole filter, so no residual
// predicate remains.
type IndexLookupPlan struct {
	TableName  string
	Column     string
	Key        record.Value
	Projection []string
}

func (*IndexLookupPlan) planNode() {}

// IndexJoinPlan probes the left table's index on the join column and
// scans the right table once per distinct key.
type IndexJoinPlan struct {
	LeftTable   string
	RightTable  string
	LeftColumn  string
	RightColumn string
	Where       *parser.Predicate
	Projection  []string
}

func (*IndexJoinPlan) planNode() {}

// LoopJoinPlan is the nested-loop fallback when the left join column
// has no index.
type LoopJoinPlan struct {
	LeftTable   string
	RightTable  string
	LeftColumn  string
	RightColumn string
	Where       *parser.Predicate
	Projection  []string
}

func (*LoopJoinPlan) planNode() {}

// ----- Introspection plan nodes -----

type ShowTablesPlan struct{}

func (*ShowTablesPlan) planNode() {}

type DescribePlan struct {
	TableName string
}

func (*DescribePlan) planNode() {}
