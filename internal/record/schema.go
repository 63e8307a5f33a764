package record

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

type ColumnType uint8

const (
	ColInt ColumnType = iota
	ColText
	ColBool
)

// String returns the SQL type token for t.
func (t ColumnType) String() string {
	switch t {
	case ColInt:
		return "INT"
	case ColText:
		return "STRING"
	case ColBool:
		return "BOOLEAN"
	}
	return fmt.Sprintf("ColumnType(%d)", uint8(t))
}

// ParseColumnType maps a SQL type token (case-insensitive) to a ColumnType.
func ParseColumnType(s string) (ColumnType, error) {
	switch strings.ToUpper(s) {
	case "INT":
		return ColInt, nil
	case "STRING":
		return ColText, nil
	case "BOOLEAN":
		return ColBool, nil
	}
	return 0, fmt.Errorf("record: unknown column type %q", s)
}

func (t ColumnType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ColumnType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	ct, err := ParseColumnType(s)
	if err != nil {
		return err
	}
	*t = ct
	return nil
}

// Column is one column declaration. Primary columns are always unique and
// indexed; the parser sets both flags when it sees PRIMARY.
type Column struct {
	Name    string     `json:"name"`
	Type    ColumnType `json:"type"`
	Primary bool       `json:"primary"`
	Unique  bool       `json:"unique"`
	Indexed bool       `json:"indexed"`
}

type Schema struct {
	Cols []Column
}

func (s Schema) NumCols() int { return len(s.Cols) }

// Col returns the column named name, if present.
func (s Schema) Col(name string) (Column, bool) {
	for _, c := range s.Cols {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func (s Schema) Has(name string) bool {
	_, ok := s.Col(name)
	return ok
}

// Names returns the column names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Cols))
	for i, c := range s.Cols {
		names[i] = c.Name
	}
	return names
}
