package hea

import (
	"fmt"
	"strconv"
	"strings"
)

// Operator is a filter comparison operator.
type Operator string

// Supported operators.
const (
	OpEq Operator = "="
	OpNe Operator = "!="
	OpLt Operator = "<"
	OpLe Operator = "<="
	OpGt Operator = ">"
	OpGe Operator = ">="
)

var supportedOperators = []Operator{OpEq, OpNe, OpLt, OpLe, OpGt, OpGe}

// Valid reports whether op is one of the supported operators.
func (op Operator) Valid() bool {
	for _, s := range supportedOperators {
		if op == s {
			return true
		}
	}
	return false
}

// Filter is one "column op value" condition. Value is always bound, never
// written into the query text.
type Filter struct {
	Column string
	Op     Operator
	Value  any
}

func (f Filter) String() string {
	return fmt.Sprintf("%s %s %v", f.Column, f.Op, f.Value)
}

const operatorChars = "<>=!"

// ParseFilter parses a filter expression such as "ave_fe1>1.7",
// "hmix_data <= -3" or "name = Fe". The value is parsed as an integer, then
// a float, and otherwise kept as a string with surrounding quotes removed.
func ParseFilter(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)

	start := strings.IndexAny(expr, operatorChars)
	if start < 0 {
		// "col LIKE x" style: the middle field is the operator.
		fields := strings.Fields(expr)
		if len(fields) == 3 {
			return Filter{}, &UnsupportedOperatorError{Operator: fields[1]}
		}
		return Filter{}, fmt.Errorf("invalid filter %q: expected <column><operator><value>", expr)
	}
	end := start
	for end < len(expr) && strings.IndexByte(operatorChars, expr[end]) >= 0 {
		end++
	}

	column := strings.TrimSpace(expr[:start])
	op := Operator(expr[start:end])
	raw := strings.TrimSpace(expr[end:])

	if column == "" || raw == "" {
		return Filter{}, fmt.Errorf("invalid filter %q: expected <column><operator><value>", expr)
	}
	if !op.Valid() {
		return Filter{}, &UnsupportedOperatorError{Operator: string(op)}
	}
	return Filter{Column: column, Op: op, Value: parseValue(raw)}, nil
}

func parseValue(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if len(raw) >= 2 {
		if q := raw[0]; (q == '\'' || q == '"') && raw[len(raw)-1] == q {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}
