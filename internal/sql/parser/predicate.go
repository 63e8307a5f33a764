package parser

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Predicate is a parsed WHERE expression: comparisons chained by AND/OR
// with equal precedence. Evaluation folds strictly left to right, so
// "a=1 OR a=2 AND b=3" reads ((a=1 OR a=2) AND b=3).
type Predicate struct {
	First *Comparison     `parser:"@@"`
	Rest  []*OpComparison `parser:"@@*"`
}

type OpComparison struct {
	Op  string      `parser:"@('AND' | 'OR')"`
	Cmp *Comparison `parser:"@@"`
}

// Comparison is one "column OP literal" term.
type Comparison struct {
	Column string   `parser:"@Ident"`
	Op     string   `parser:"@Operator"`
	Value  *Literal `parser:"@@"`
}

// Literal is a predicate literal. Str keeps its outer quotes; they are
// stripped when the literal becomes a value.
type Literal struct {
	Str  *string  `parser:"  @String"`
	Int  *int64   `parser:"| @Number"`
	Bool *Boolean `parser:"| @('TRUE' | 'FALSE')"`
}

// Boolean captures TRUE/FALSE in any case.
type Boolean bool

func (b *Boolean) Capture(values []string) error {
	*b = Boolean(strings.EqualFold(values[0], "TRUE"))
	return nil
}

var predicateLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `'[^']*'|"[^"]*"`},
	{Name: "Number", Pattern: `[-+]?\d+`},
	{Name: "Operator", Pattern: `!=|<=|>=|[=<>]`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.]*`},
})

var predicateParser = participle.MustBuild[Predicate](
	participle.Lexer(predicateLexer),
	participle.CaseInsensitive("Ident"),
)

// ParsePredicate parses a WHERE expression. Column names are folded to
// lowercase to match the schema's stored names.
func ParsePredicate(s string) (*Predicate, error) {
	p, err := predicateParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPredicate, err)
	}
	p.First.Column = strings.ToLower(p.First.Column)
	for _, part := range p.Rest {
		part.Cmp.Column = strings.ToLower(part.Cmp.Column)
	}
	return p, nil
}
