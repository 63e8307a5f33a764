package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/relstore/internal/record"
)

func usersSchema() record.Schema {
	return record.Schema{Cols: []record.Column{
		{Name: "id", Type: record.ColInt, Primary: true, Unique: true, Indexed: true},
		{Name: "name", Type: record.ColText},
		{Name: "active", Type: record.ColBool, Indexed: true},
	}}
}

func userRow(id int64, name string, active bool) record.Row {
	return record.Row{
		"id":     record.IntValue(id),
		"name":   record.TextValue(name),
		"active": record.BoolValue(active),
	}
}

func TestNewTableCreatesDeclaredIndexes(t *testing.T) {
	tbl := NewTable("users", usersSchema())

	require.Len(t, tbl.Indexes, 2)
	require.Contains(t, tbl.Indexes, "id")
	require.Contains(t, tbl.Indexes, "active")
	require.Equal(t, []string{"active", "id"}, tbl.IndexedColumns())
}

func TestAppendRowIndexesPresentColumns(t *testing.T) {
	tbl := NewTable("users", usersSchema())

	id := tbl.AppendRow(userRow(1, "alice", true))
	require.Equal(t, 0, id)

	// Omitted columns stay out of their indexes.
	id = tbl.AppendRow(record.Row{"id": record.IntValue(2)})
	require.Equal(t, 1, id)

	require.Equal(t, []int{0}, tbl.Indexes["active"].Lookup(record.BoolValue(true)))
	require.Equal(t, []int{1}, tbl.Indexes["id"].Lookup(record.IntValue(2)))
	require.Equal(t, 2, tbl.RowCount())
}

func TestRemoveRowRenumbersDensely(t *testing.T) {
	tbl := NewTable("users", usersSchema())
	tbl.AppendRow(userRow(1, "a", true))
	tbl.AppendRow(userRow(2, "b", false))
	tbl.AppendRow(userRow(3, "c", true))
	tbl.AppendRow(userRow(4, "d", true))

	tbl.RemoveRow(1)

	require.Equal(t, 3, tbl.RowCount())
	require.Equal(t, record.IntValue(1), tbl.Rows[0]["id"])
	require.Equal(t, record.IntValue(3), tbl.Rows[1]["id"])
	require.Equal(t, record.IntValue(4), tbl.Rows[2]["id"])

	// Every bucket reflects the surviving rows' current positions.
	require.Equal(t, []int{0, 1, 2}, intBuckets(tbl.Indexes["id"]))
	require.Equal(t, []int{0, 1, 2}, tbl.Indexes["active"].Lookup(record.BoolValue(true)))
	require.Empty(t, tbl.Indexes["active"].Lookup(record.BoolValue(false)))
	require.Empty(t, tbl.Indexes["id"].Lookup(record.IntValue(2)))
}

func intBuckets(ix *Index) []int {
	var ids []int
	for _, k := range ix.Keys() {
		ids = append(ids, ix.Lookup(k)...)
	}
	return ids
}

func TestHasValue(t *testing.T) {
	tbl := NewTable("users", usersSchema())
	tbl.AppendRow(userRow(1, "alice", true))
	tbl.AppendRow(userRow(2, "bob", false))

	// Indexed column probes through the index.
	require.True(t, tbl.HasValue("id", record.IntValue(1), -1))
	require.False(t, tbl.HasValue("id", record.IntValue(1), 0))
	require.False(t, tbl.HasValue("id", record.IntValue(3), -1))

	// Unindexed column falls back to a scan.
	require.True(t, tbl.HasValue("name", record.TextValue("bob"), -1))
	require.False(t, tbl.HasValue("name", record.TextValue("bob"), 1))
	require.False(t, tbl.HasValue("name", record.TextValue("carol"), -1))
}

func TestCheckUnique(t *testing.T) {
	tbl := NewTable("users", usersSchema())
	tbl.AppendRow(userRow(1, "alice", true))

	require.NoError(t, tbl.CheckUnique("id", record.IntValue(2), -1))

	err := tbl.CheckUnique("id", record.IntValue(1), -1)
	require.ErrorIs(t, err, ErrConstraint)

	// The row itself is excluded when updating in place.
	require.NoError(t, tbl.CheckUnique("id", record.IntValue(1), 0))
}

func TestValidateColumns(t *testing.T) {
	tbl := NewTable("users", usersSchema())

	require.NoError(t, tbl.ValidateColumns([]string{"id", "name"}))

	err := tbl.ValidateColumns([]string{"id", "email"})
	require.ErrorIs(t, err, ErrUnknownColumn)
}

func TestRebuildIndexesMatchesIncremental(t *testing.T) {
	tbl := NewTable("users", usersSchema())
	tbl.AppendRow(userRow(1, "a", true))
	tbl.AppendRow(userRow(2, "b", false))
	tbl.AppendRow(userRow(3, "c", true))
	tbl.RemoveRow(0)

	want := map[string]map[string][]int{}
	for name, ix := range tbl.Indexes {
		want[name] = bucketDump(ix)
	}

	tbl.RebuildIndexes()

	got := map[string]map[string][]int{}
	for name, ix := range tbl.Indexes {
		got[name] = bucketDump(ix)
	}
	require.Equal(t, want, got)
}

func bucketDump(ix *Index) map[string][]int {
	out := make(map[string][]int)
	for _, k := range ix.Keys() {
		ids := ix.Lookup(k)
		cp := make([]int, len(ids))
		copy(cp, ids)
		out[k.String()] = cp
	}
	return out
}
