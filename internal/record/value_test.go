package record

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueCompare_SameType(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{"int_lt", IntValue(1), IntValue(2), -1},
		{"int_eq", IntValue(7), IntValue(7), 0},
		{"int_gt", IntValue(3), IntValue(-4), 1},
		{"text_lt", TextValue("alice"), TextValue("bob"), -1},
		{"text_eq", TextValue(""), TextValue(""), 0},
		{"text_gt", TextValue("z"), TextValue("a"), 1},
		{"bool_false_lt_true", BoolValue(false), BoolValue(true), -1},
		{"bool_eq", BoolValue(true), BoolValue(true), 0},
		{"bool_true_gt_false", BoolValue(true), BoolValue(false), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.a.Compare(tc.b)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestValueCompare_CrossType(t *testing.T) {
	_, err := IntValue(1).Compare(TextValue("1"))
	require.ErrorIs(t, err, ErrIncomparable)

	_, err = BoolValue(true).Compare(IntValue(1))
	require.ErrorIs(t, err, ErrIncomparable)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "42", IntValue(42).String())
	assert.Equal(t, "-1", IntValue(-1).String())
	assert.Equal(t, "alice", TextValue("alice").String())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "false", BoolValue(false).String())
}

func TestValueJSON_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		raw  string
	}{
		{"int", IntValue(42), "42"},
		{"negative_int", IntValue(-7), "-7"},
		{"text", TextValue("Alice"), `"Alice"`},
		{"bool", BoolValue(true), "true"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.v)
			require.NoError(t, err)
			require.Equal(t, tc.raw, string(b))

			var back Value
			require.NoError(t, json.Unmarshal(b, &back))
			require.Equal(t, tc.v, back)
		})
	}
}

func TestValueJSON_BadScalar(t *testing.T) {
	var v Value
	err := v.UnmarshalJSON([]byte("1.5"))
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestRowProject(t *testing.T) {
	row := Row{"id": IntValue(1), "name": TextValue("a")}

	got := row.Project([]string{"name", "missing"})
	require.Equal(t, Row{"name": TextValue("a")}, got)

	// Clone is independent of the original.
	cp := row.Clone()
	cp["id"] = IntValue(99)
	require.Equal(t, IntValue(1), row["id"])
}
