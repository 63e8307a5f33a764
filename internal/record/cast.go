package record

import (
	"fmt"
	"strconv"
	"strings"
)

// CastLiteral converts a raw literal token to a Value of the declared
// column type.
//
// INT parses strictly and fails with ErrTypeMismatch. STRING strips one
// layer of matching outer quotes if present, otherwise keeps the token
// verbatim. BOOLEAN is permissive on purpose: true/1/yes (any case) map to
// true and every other token maps to false, so it never fails.
func CastLiteral(raw string, t ColumnType) (Value, error) {
	raw = strings.TrimSpace(raw)
	switch t {
	case ColInt:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: cannot cast %q to INT", ErrTypeMismatch, raw)
		}
		return IntValue(i), nil
	case ColText:
		return TextValue(unquote(raw)), nil
	case ColBool:
		switch strings.ToLower(raw) {
		case "true", "1", "yes":
			return BoolValue(true), nil
		}
		return BoolValue(false), nil
	}
	return Value{}, fmt.Errorf("%w: unknown column type %d", ErrTypeMismatch, uint8(t))
}

// unquote removes one layer of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
