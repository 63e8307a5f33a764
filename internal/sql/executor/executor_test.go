package executor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/relstore/internal/catalog"
	"github.com/tuannm99/relstore/internal/record"
	"github.com/tuannm99/relstore/internal/sql/parser"
)

// ---- fakes ----

type spyPersister struct {
	saves int
	err   error
}

func (s *spyPersister) Save(_ *catalog.Database) error {
	s.saves++
	return s.err
}

func newTestExecutor(t *testing.T, stmts ...string) *Executor {
	t.Helper()
	e := New(catalog.NewDatabase(), nil)
	for _, sql := range stmts {
		_, err := e.ExecSQL(sql)
		require.NoError(t, err, sql)
	}
	return e
}

// ---- end to end ----

func TestExecSQL_Scenario(t *testing.T) {
	e := newTestExecutor(t,
		"CREATE TABLE users (id INT PRIMARY UNIQUE INDEX, name STRING, active BOOLEAN);",
	)

	res, err := e.ExecSQL("INSERT INTO users (id, name, active) VALUES (1, 'Alice', true);")
	require.NoError(t, err)
	assert.Equal(t, "Insert successful", res.Message)
	assert.Equal(t, int64(1), res.AffectedRows)

	_, err = e.ExecSQL("INSERT INTO users (id, name, active) VALUES (1, 'Bob', false);")
	require.ErrorIs(t, err, catalog.ErrConstraint)

	res, err = e.ExecSQL("SELECT * FROM users;")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	res, err = e.ExecSQL("SELECT * FROM users WHERE active = true;")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, record.TextValue("Alice"), res.Rows[0]["name"])

	res, err = e.ExecSQL("UPDATE users SET active = false WHERE id = 1;")
	require.NoError(t, err)
	assert.Equal(t, "1 rows updated", res.Message)

	res, err = e.ExecSQL("SELECT * FROM users WHERE active = true;")
	require.NoError(t, err)
	assert.Empty(t, res.Rows)

	res, err = e.ExecSQL("DELETE FROM users WHERE id = 1;")
	require.NoError(t, err)
	assert.Equal(t, "1 rows deleted", res.Message)

	res, err = e.ExecSQL("SELECT * FROM users;")
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
}

func TestExecSQL_Errors(t *testing.T) {
	e := newTestExecutor(t, "CREATE TABLE users (id INT PRIMARY, name STRING);")

	tests := []struct {
		name string
		sql  string
		want error
	}{
		{"table_exists", "CREATE TABLE users (x INT);", catalog.ErrTableExists},
		{"table_not_found", "SELECT * FROM ghosts;", catalog.ErrTableNotFound},
		{"unknown_column_insert", "INSERT INTO users (id, nope) VALUES (1, 2);", catalog.ErrUnknownColumn},
		{"unknown_column_update", "UPDATE users SET nope = 1 WHERE id = 1;", catalog.ErrUnknownColumn},
		{"type_mismatch", "INSERT INTO users (id) VALUES ('x');", record.ErrTypeMismatch},
		{"unknown_type", "CREATE TABLE bad (x FLOAT);", parser.ErrUnknownType},
		{"arity", "INSERT INTO users (id, name) VALUES (1);", parser.ErrArityMismatch},
		{"cross_type_where", "SELECT * FROM users WHERE name = 1;", parser.ErrInvalidPredicate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.name == "cross_type_where" {
				// Needs a row for the scan to reach the comparison.
				_, err := e.ExecSQL("INSERT INTO users (id, name) VALUES (7, 'x');")
				require.NoError(t, err)
			}
			_, err := e.ExecSQL(tc.sql)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestExecSQL_FailedInsertLeavesTableUntouched(t *testing.T) {
	e := newTestExecutor(t, "CREATE TABLE t (a INT, b INT);")

	_, err := e.ExecSQL("INSERT INTO t (a, b) VALUES (1, 'x');")
	require.ErrorIs(t, err, record.ErrTypeMismatch)

	res, err := e.ExecSQL("SELECT * FROM t;")
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
}

func TestExecSQL_PartialRows(t *testing.T) {
	e := newTestExecutor(t,
		"CREATE TABLE users (id INT PRIMARY, name STRING);",
		"INSERT INTO users (id) VALUES (1);",
	)

	// Unlisted columns stay absent, and scanning them is an error.
	_, err := e.ExecSQL("SELECT * FROM users WHERE name = 'x';")
	require.ErrorIs(t, err, parser.ErrInvalidPredicate)

	// The indexed path never sees rows missing its column.
	res, err := e.ExecSQL("SELECT * FROM users WHERE id = 1;")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	_, ok := res.Rows[0]["name"]
	assert.False(t, ok)
}

func TestExecSQL_UpdateUniqueConstraints(t *testing.T) {
	e := newTestExecutor(t,
		"CREATE TABLE users (id INT PRIMARY, name STRING, active BOOLEAN);",
		"INSERT INTO users (id, name, active) VALUES (1, 'Alice', true);",
		"INSERT INTO users (id, name, active) VALUES (2, 'Bob', true);",
	)

	// Moving id 2 onto id 1 collides.
	_, err := e.ExecSQL("UPDATE users SET id = 1 WHERE id = 2;")
	require.ErrorIs(t, err, catalog.ErrConstraint)

	// Rewriting a row's own unique value is fine.
	res, err := e.ExecSQL("UPDATE users SET id = 1 WHERE id = 1;")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.AffectedRows)

	// One unique value can never land on two rows.
	_, err = e.ExecSQL("UPDATE users SET id = 9 WHERE active = true;")
	require.ErrorIs(t, err, catalog.ErrConstraint)

	// The failed batch changed nothing.
	res, err = e.ExecSQL("SELECT * FROM users WHERE id = 9;")
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
}

func TestExecSQL_UpdateMaintainsIndexes(t *testing.T) {
	e := newTestExecutor(t,
		"CREATE TABLE t (id INT PRIMARY, tag STRING INDEX);",
		"INSERT INTO t (id, tag) VALUES (1, 'old');",
	)

	_, err := e.ExecSQL("UPDATE t SET tag = 'new' WHERE id = 1;")
	require.NoError(t, err)

	res, err := e.ExecSQL("SELECT * FROM t WHERE tag = 'new';")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	res, err = e.ExecSQL("SELECT * FROM t WHERE tag = 'old';")
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
}

func TestExecSQL_IndexAndScanAgree(t *testing.T) {
	e := newTestExecutor(t,
		"CREATE TABLE t (id INT INDEX, n INT);",
		"INSERT INTO t (id, n) VALUES (1, 10);",
		"INSERT INTO t (id, n) VALUES (2, 20);",
		"INSERT INTO t (id, n) VALUES (2, 21);",
		"INSERT INTO t (id, n) VALUES (3, 30);",
	)

	// The single equality takes the index.
	fast, err := e.ExecSQL("SELECT * FROM t WHERE id = 2;")
	require.NoError(t, err)

	// The OR chain forces a scan over the same logical filter.
	slow, err := e.ExecSQL("SELECT * FROM t WHERE id = 2 OR id = 2;")
	require.NoError(t, err)

	require.Len(t, fast.Rows, 2)
	assert.ElementsMatch(t, fast.Rows, slow.Rows)
}

func TestExecSQL_DeleteRenumbersDensely(t *testing.T) {
	e := newTestExecutor(t,
		"CREATE TABLE t (id INT INDEX);",
		"INSERT INTO t (id) VALUES (10);",
		"INSERT INTO t (id) VALUES (20);",
		"INSERT INTO t (id) VALUES (30);",
		"INSERT INTO t (id) VALUES (40);",
	)

	res, err := e.ExecSQL("DELETE FROM t WHERE id = 20 OR id = 30;")
	require.NoError(t, err)
	assert.Equal(t, "2 rows deleted", res.Message)

	// Survivors compact to ids 0..n-1 and their index entries follow.
	res, err = e.ExecSQL("SELECT * FROM t WHERE id = 40;")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	res, err = e.ExecSQL("SELECT * FROM t;")
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
}

func TestExecSQL_Projection(t *testing.T) {
	e := newTestExecutor(t,
		"CREATE TABLE users (id INT, name STRING);",
		"INSERT INTO users (id, name) VALUES (1, 'Alice');",
	)

	res, err := e.ExecSQL("SELECT name FROM users;")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, res.Columns)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, record.Row{"name": record.TextValue("Alice")}, res.Rows[0])

	// Unknown projected columns stay in the header but not the rows.
	res, err = e.ExecSQL("SELECT name, nope FROM users;")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "nope"}, res.Columns)
	require.Len(t, res.Rows, 1)
	_, ok := res.Rows[0]["nope"]
	assert.False(t, ok)
}

func TestExecSQL_Introspection(t *testing.T) {
	e := newTestExecutor(t,
		"CREATE TABLE users (id INT PRIMARY, name STRING);",
		"CREATE TABLE orders (id INT);",
		"INSERT INTO users (id, name) VALUES (1, 'Alice');",
	)

	res, err := e.ExecSQL("SHOW TABLES;")
	require.NoError(t, err)
	assert.Equal(t, []string{"table"}, res.Columns)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, record.TextValue("users"), res.Rows[0]["table"])
	assert.Equal(t, record.TextValue("orders"), res.Rows[1]["table"])

	res, err = e.ExecSQL("DESCRIBE users;")
	require.NoError(t, err)
	assert.Equal(t, "Table users: 1 rows", res.Message)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, record.TextValue("id"), res.Rows[0]["column"])
	assert.Equal(t, record.BoolValue(true), res.Rows[0]["primary"])

	_, err = e.ExecSQL("DESCRIBE ghosts;")
	require.ErrorIs(t, err, catalog.ErrTableNotFound)
}

// ---- persistence hooks ----

func TestExecSQL_SnapshotAfterEachMutation(t *testing.T) {
	spy := &spyPersister{}
	e := New(catalog.NewDatabase(), spy)

	_, err := e.ExecSQL("CREATE TABLE t (id INT INDEX);")
	require.NoError(t, err)
	require.Equal(t, 1, spy.saves)

	_, err = e.ExecSQL("INSERT INTO t (id) VALUES (1);")
	require.NoError(t, err)
	require.Equal(t, 2, spy.saves)

	// Reads do not persist.
	_, err = e.ExecSQL("SELECT * FROM t;")
	require.NoError(t, err)
	require.Equal(t, 2, spy.saves)

	// Zero-row mutations still persist.
	_, err = e.ExecSQL("DELETE FROM t WHERE id = 99;")
	require.NoError(t, err)
	require.Equal(t, 3, spy.saves)

	// Failed statements do not.
	_, err = e.ExecSQL("INSERT INTO t (id) VALUES ('x');")
	require.ErrorIs(t, err, record.ErrTypeMismatch)
	require.Equal(t, 3, spy.saves)
}

func TestExecSQL_SnapshotFailureDoesNotFailStatement(t *testing.T) {
	spy := &spyPersister{err: errors.New("disk full")}
	e := New(catalog.NewDatabase(), spy)

	res, err := e.ExecSQL("CREATE TABLE t (id INT);")
	require.NoError(t, err)
	assert.Equal(t, "Table t created", res.Message)
	require.Equal(t, 1, spy.saves)
}
