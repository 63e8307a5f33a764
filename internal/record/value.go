package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

var (
	ErrTypeMismatch = errors.New("record: type mismatch")
	ErrIncomparable = errors.New("record: incomparable values")
)

// Value is a tagged scalar: exactly one of Int, Str, Bool is meaningful,
// selected by Type. The zero value is the integer 0.
type Value struct {
	Type ColumnType
	Int  int64
	Str  string
	Bool bool
}

func IntValue(v int64) Value   { return Value{Type: ColInt, Int: v} }
func TextValue(s string) Value { return Value{Type: ColText, Str: s} }
func BoolValue(b bool) Value   { return Value{Type: ColBool, Bool: b} }

// String returns the display form: integers in decimal, text verbatim,
// booleans as true/false.
func (v Value) String() string {
	switch v.Type {
	case ColInt:
		return strconv.FormatInt(v.Int, 10)
	case ColText:
		return v.Str
	case ColBool:
		return strconv.FormatBool(v.Bool)
	}
	return fmt.Sprintf("Value(%d)", uint8(v.Type))
}

// Compare orders v against other within one type: integers numerically,
// text lexicographically, booleans with false before true. Values of
// different types do not compare.
func (v Value) Compare(other Value) (int, error) {
	if v.Type != other.Type {
		return 0, fmt.Errorf("%w: %s and %s", ErrIncomparable, v.Type, other.Type)
	}
	switch v.Type {
	case ColInt:
		switch {
		case v.Int < other.Int:
			return -1, nil
		case v.Int > other.Int:
			return 1, nil
		}
		return 0, nil
	case ColText:
		return strings.Compare(v.Str, other.Str), nil
	case ColBool:
		switch {
		case !v.Bool && other.Bool:
			return -1, nil
		case v.Bool && !other.Bool:
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("%w: unknown value type %d", ErrIncomparable, uint8(v.Type))
}

// MarshalJSON writes the bare scalar form (1, "a", true) so snapshots stay
// plain JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Type {
	case ColInt:
		return strconv.AppendInt(nil, v.Int, 10), nil
	case ColText:
		return json.Marshal(v.Str)
	case ColBool:
		return strconv.AppendBool(nil, v.Bool), nil
	}
	return nil, fmt.Errorf("record: cannot marshal value type %d", uint8(v.Type))
}

// UnmarshalJSON infers the tag from the JSON shape: true/false, then a
// quoted string, then a base-10 integer. Anything else fails.
func (v *Value) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "true" || s == "false":
		*v = BoolValue(s == "true")
	case len(s) > 0 && s[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*v = TextValue(str)
	default:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: cannot decode %s", ErrTypeMismatch, s)
		}
		*v = IntValue(i)
	}
	return nil
}
