package parser

// Statement is the root interface for all SQL statements.
type Statement interface {
	stmtNode()
}

// ----- CREATE TABLE -----

// ColumnDef is one column declaration. The type token stays raw here; the
// planner maps it to a record type.
type ColumnDef struct {
	Name    string
	Type    string // "INT", "STRING", "BOOLEAN"
	Primary bool
	Unique  bool
	Indexed bool
}

type CreateTableStmt struct {
	TableName string
	Columns   []ColumnDef
}

func (*CreateTableStmt) stmtNode() {}

// ----- INSERT -----

// InsertStmt keeps values as raw literal tokens; each one is cast to its
// target column's declared type at execution time.
type InsertStmt struct {
	TableName string
	Columns   []string
	Values    []string
}

func (*InsertStmt) stmtNode() {}

// ----- SELECT -----

// JoinClause is the optional inner-join arm:
// JOIN <right> ON <leftColumn>=<rightColumn>.
type JoinClause struct {
	RightTable  string
	LeftColumn  string
	RightColumn string
}

type SelectStmt struct {
	Columns   []string // lowercased; ["*"] means whole rows
	TableName string
	Join      *JoinClause
	Where     *Predicate
}

func (*SelectStmt) stmtNode() {}

// ----- UPDATE -----

type Assignment struct {
	Column string
	Value  string // raw literal token
}

// UpdateStmt always carries a predicate; there is no UPDATE-all form.
type UpdateStmt struct {
	TableName   string
	Assignments []Assignment
	Where       *Predicate
}

func (*UpdateStmt) stmtNode() {}

// ----- DELETE -----

// DeleteStmt always carries a predicate; there is no DELETE-all form.
type DeleteStmt struct {
	TableName string
	Where     *Predicate
}

func (*DeleteStmt) stmtNode() {}

// ----- Introspection -----

type ShowTablesStmt struct{}

func (*ShowTablesStmt) stmtNode() {}

type DescribeStmt struct {
	TableName string
}

func (*DescribeStmt) stmtNode() {}
