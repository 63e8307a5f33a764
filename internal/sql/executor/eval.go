package executor

import (
	"fmt"
	"strings"

	"github.com/tuannm99/relstore/internal/record"
	"github.com/tuannm99/relstore/internal/sql/parser"
	"github.com/tuannm99/relstore/internal/sql/planner"
)

// evalPredicate folds the comparisons strictly left to right. AND and
// OR share a precedence level, and every term is evaluated even when
// the accumulator already decides the outcome, so a bad term always
// surfaces as an error.
func evalPredicate(w *parser.Predicate, row record.Row) (bool, error) {
	acc, err := evalComparison(w.First, row)
	if err != nil {
		return false, err
	}
	for _, part := range w.Rest {
		next, err := evalComparison(part.Cmp, row)
		if err != nil {
			return false, err
		}
		if strings.EqualFold(part.Op, "AND") {
			acc = acc && next
		} else {
			acc = acc || next
		}
	}
	return acc, nil
}

func evalComparison(c *parser.Comparison, row record.Row) (bool, error) {
	have, ok := row[c.Column]
	if !ok {
		return false, fmt.Errorf("%w: unresolved column %q", parser.ErrInvalidPredicate, c.Column)
	}

	cmp, err := have.Compare(planner.LiteralValue(c.Value))
	if err != nil {
		return false, fmt.Errorf("%w: column %q: %v", parser.ErrInvalidPredicate, c.Column, err)
	}

	switch c.Op {
	case "=":
		return cmp == 0, nil
	case "!=":
		return cmp != 0, nil
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	default:
		return false, fmt.Errorf("%w: unknown operator %q", parser.ErrInvalidPredicate, c.Op)
	}
}
