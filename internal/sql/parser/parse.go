package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrParse                = errors.New("parser: malformed statement")
	ErrUnsupportedStatement = errors.New("parser: unsupported statement")
	ErrUnknownType          = errors.New("parser: unknown column type")
	ErrArityMismatch        = errors.New("parser: column/value count mismatch")
	ErrInvalidPredicate     = errors.New("parser: invalid predicate")
)

// parseIdent validates an identifier (table/column name) and folds it to
// lowercase. Rules:
//   - must be exactly one token (no spaces)
//   - first char: letter or '_'
//   - rest: letter/digit/'_'
func parseIdent(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: missing identifier", ErrParse)
	}

	parts := strings.Fields(s)
	if len(parts) != 1 {
		return "", fmt.Errorf("%w: invalid identifier %q", ErrParse, s)
	}
	id := parts[0]

	for i, r := range id {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return "", fmt.Errorf("%w: invalid identifier %q", ErrParse, id)
			}
			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "", fmt.Errorf("%w: invalid identifier %q", ErrParse, id)
		}
	}

	return strings.ToLower(id), nil
}

// parseColumnRef accepts a plain identifier or the qualified
// "table.column" form used when projecting join output.
func parseColumnRef(s string) (string, error) {
	s = strings.TrimSpace(s)
	table, column, ok := strings.Cut(s, ".")
	if !ok {
		return parseIdent(s)
	}
	t, err := parseIdent(table)
	if err != nil {
		return "", err
	}
	c, err := parseIdent(column)
	if err != nil {
		return "", err
	}
	return t + "." + c, nil
}

// Parse parses a single SQL statement into an AST. A trailing ';' is
// accepted and stripped. Statement kind is picked by the first keyword.
func Parse(sql string) (Statement, error) {
	s := strings.TrimSpace(sql)
	s = strings.TrimSpace(strings.TrimSuffix(s, ";"))
	if s == "" {
		return nil, fmt.Errorf("%w: empty statement", ErrParse)
	}

	up := strings.ToUpper(s)

	switch {
	case strings.HasPrefix(up, "CREATE TABLE"):
		return parseCreateTable(s)
	case strings.HasPrefix(up, "INSERT INTO"):
		return parseInsert(s)
	case strings.HasPrefix(up, "SELECT"):
		return parseSelect(s)
	case strings.HasPrefix(up, "UPDATE"):
		return parseUpdate(s)
	case strings.HasPrefix(up, "DELETE FROM"):
		return parseDelete(s)
	case up == "SHOW TABLES":
		return &ShowTablesStmt{}, nil
	case strings.HasPrefix(up, "DESCRIBE"):
		return parseDescribe(s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStatement, sql)
	}
}

// parseCreateTable handles
// "CREATE TABLE <name> (<col> <TYPE> [PRIMARY] [UNIQUE] [INDEX], ...)".
// PRIMARY implies UNIQUE and INDEX. Unrecognized flag tokens are ignored.
func parseCreateTable(sql string) (Statement, error) {
	withoutPrefix := strings.TrimSpace(sql[len("CREATE TABLE"):])
	parts := strings.SplitN(withoutPrefix, "(", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: invalid CREATE TABLE syntax", ErrParse)
	}

	tableName, err := parseIdent(parts[0])
	if err != nil {
		return nil, err
	}

	defPart := strings.TrimSuffix(strings.TrimSpace(parts[1]), ")")
	defPart = strings.TrimSpace(defPart)
	if defPart == "" {
		return nil, fmt.Errorf("%w: empty column list", ErrParse)
	}

	var cols []ColumnDef
	seen := make(map[string]bool)
	for _, def := range splitComma(defPart) {
		def = strings.TrimSpace(def)
		toks := strings.Fields(def)
		if len(toks) < 2 {
			return nil, fmt.Errorf("%w: invalid column definition %q", ErrParse, def)
		}

		colName, err := parseIdent(toks[0])
		if err != nil {
			return nil, err
		}
		if seen[colName] {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrParse, colName)
		}
		seen[colName] = true

		col := ColumnDef{
			Name: colName,
			Type: strings.ToUpper(toks[1]),
		}
		for _, flag := range toks[2:] {
			switch strings.ToUpper(flag) {
			case "PRIMARY":
				col.Primary = true
			case "UNIQUE":
				col.Unique = true
			case "INDEX":
				col.Indexed = true
			}
		}
		if col.Primary {
			col.Unique = true
			col.Indexed = true
		}
		cols = append(cols, col)
	}

	return &CreateTableStmt{
		TableName: tableName,
		Columns:   cols,
	}, nil
}

// parseInsert handles "INSERT INTO <name> (<col,...>) VALUES (<lit,...>)".
// The column list is required and must match the value count.
func parseInsert(sql string) (Statement, error) {
	rest := strings.TrimSpace(sql[len("INSERT INTO"):])

	tablePart, valPart := splitKeyword(rest, "VALUES")
	if strings.TrimSpace(valPart) == "" {
		return nil, fmt.Errorf("%w: INSERT requires a VALUES clause", ErrParse)
	}

	nameAndCols := strings.SplitN(tablePart, "(", 2)
	if len(nameAndCols) != 2 {
		return nil, fmt.Errorf("%w: INSERT requires a column list", ErrParse)
	}

	tableName, err := parseIdent(nameAndCols[0])
	if err != nil {
		return nil, err
	}

	colPart := strings.TrimSuffix(strings.TrimSpace(nameAndCols[1]), ")")
	var columns []string
	for _, c := range splitComma(colPart) {
		name, err := parseIdent(c)
		if err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: empty column list", ErrParse)
	}

	valPart = strings.TrimSpace(valPart)
	if !strings.HasPrefix(valPart, "(") || !strings.HasSuffix(valPart, ")") {
		return nil, fmt.Errorf("%w: invalid INSERT values syntax", ErrParse)
	}
	valPart = strings.TrimSpace(valPart[1 : len(valPart)-1])

	var values []string
	for _, rv := range splitComma(valPart) {
		values = append(values, strings.TrimSpace(rv))
	}

	if len(columns) != len(values) {
		return nil, fmt.Errorf("%w: %d columns, %d values", ErrArityMismatch, len(columns), len(values))
	}

	return &InsertStmt{
		TableName: tableName,
		Columns:   columns,
		Values:    values,
	}, nil
}

// parseSelect handles
// "SELECT <*|col,...> FROM <name> [JOIN <name> ON <col>=<col>] [WHERE <expr>]".
func parseSelect(sql string) (Statement, error) {
	rest := strings.TrimSpace(sql[len("SELECT"):])

	projPart, fromRest := splitKeyword(rest, "FROM")
	if strings.TrimSpace(fromRest) == "" {
		return nil, fmt.Errorf("%w: SELECT requires FROM", ErrParse)
	}

	columns, err := parseProjection(projPart)
	if err != nil {
		return nil, err
	}

	head, wherePart := splitKeyword(fromRest, "WHERE")
	joinLeft, joinRest := splitKeyword(head, "JOIN")

	var tableName string
	var join *JoinClause
	if joinRest == "" {
		tableName, err = parseIdent(head)
		if err != nil {
			return nil, err
		}
	} else {
		tableName, err = parseIdent(joinLeft)
		if err != nil {
			return nil, err
		}
		join, err = parseJoinClause(joinRest)
		if err != nil {
			return nil, err
		}
	}

	var where *Predicate
	if strings.TrimSpace(wherePart) != "" {
		where, err = ParsePredicate(wherePart)
		if err != nil {
			return nil, err
		}
	}

	return &SelectStmt{
		Columns:   columns,
		TableName: tableName,
		Join:      join,
		Where:     where,
	}, nil
}

func parseProjection(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty projection", ErrParse)
	}
	if s == "*" {
		return []string{"*"}, nil
	}

	var cols []string
	for _, c := range splitComma(s) {
		name, err := parseColumnRef(c)
		if err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, nil
}

// parseJoinClause handles "<right> ON <leftCol>=<rightCol>". Join columns
// are unqualified: the left one names a column of the FROM table, the
// right one a column of the joined table.
func parseJoinClause(s string) (*JoinClause, error) {
	rightPart, onPart := splitKeyword(s, "ON")
	if strings.TrimSpace(onPart) == "" {
		return nil, fmt.Errorf("%w: JOIN requires ON", ErrParse)
	}

	rightTable, err := parseIdent(rightPart)
	if err != nil {
		return nil, err
	}

	left, right, ok := strings.Cut(onPart, "=")
	if !ok {
		return nil, fmt.Errorf("%w: invalid join condition %q", ErrParse, onPart)
	}
	leftCol, err := parseIdent(left)
	if err != nil {
		return nil, err
	}
	rightCol, err := parseIdent(right)
	if err != nil {
		return nil, err
	}

	return &JoinClause{
		RightTable:  rightTable,
		LeftColumn:  leftCol,
		RightColumn: rightCol,
	}, nil
}

// parseUpdate handles "UPDATE <name> SET <col>=<lit>[, ...] WHERE <expr>".
// The WHERE clause is mandatory.
func parseUpdate(sql string) (Statement, error) {
	rest := strings.TrimSpace(sql[len("UPDATE"):])
	tablePart, afterTable := splitKeyword(rest, "SET")

	tableName, err := parseIdent(tablePart)
	if err != nil {
		return nil, err
	}

	setPart, wherePart := splitKeyword(afterTable, "WHERE")
	setPart = strings.TrimSpace(setPart)
	if setPart == "" {
		return nil, fmt.Errorf("%w: missing SET clause", ErrParse)
	}
	if strings.TrimSpace(wherePart) == "" {
		return nil, fmt.Errorf("%w: UPDATE requires a WHERE clause", ErrParse)
	}

	assignStrs := splitComma(setPart)
	assigns := make([]Assignment, 0, len(assignStrs))
	for _, a := range assignStrs {
		a = strings.TrimSpace(a)
		col, val, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("%w: invalid assignment %q", ErrParse, a)
		}

		name, err := parseIdent(col)
		if err != nil {
			return nil, err
		}

		assigns = append(assigns, Assignment{
			Column: name,
			Value:  strings.TrimSpace(val),
		})
	}

	where, err := ParsePredicate(wherePart)
	if err != nil {
		return nil, err
	}

	return &UpdateStmt{
		TableName:   tableName,
		Assignments: assigns,
		Where:       where,
	}, nil
}

// parseDelete handles "DELETE FROM <name> WHERE <expr>". The WHERE clause
// is mandatory.
func parseDelete(sql string) (Statement, error) {
	rest := strings.TrimSpace(sql[len("DELETE FROM"):])
	tablePart, wherePart := splitKeyword(rest, "WHERE")

	tableName, err := parseIdent(tablePart)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(wherePart) == "" {
		return nil, fmt.Errorf("%w: DELETE requires a WHERE clause", ErrParse)
	}

	where, err := ParsePredicate(wherePart)
	if err != nil {
		return nil, err
	}

	return &DeleteStmt{TableName: tableName, Where: where}, nil
}

func parseDescribe(sql string) (Statement, error) {
	rest := strings.TrimSpace(sql[len("DESCRIBE"):])
	name, err := parseIdent(rest)
	if err != nil {
		return nil, err
	}
	return &DescribeStmt{TableName: name}, nil
}

// splitKeyword splits "X <keyword> Y" case-insensitively, skipping keyword
// occurrences inside quoted strings. Returns (X, Y); if the keyword is not
// present, (s, ""). The keyword must be surrounded by spaces.
func splitKeyword(s, keyword string) (string, string) {
	k := " " + strings.ToUpper(keyword) + " "

	var quote byte
	for i := 0; i+len(k) <= len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		default:
			if strings.EqualFold(s[i:i+len(k)], k) {
				return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+len(k):])
			}
		}
	}
	return s, ""
}

// splitComma splits a comma-separated list, ignoring commas inside quotes.
func splitComma(s string) []string {
	parts := []string{}
	cur := strings.Builder{}
	var quote rune
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			cur.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			cur.WriteRune(r)
		case r == ',':
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}
