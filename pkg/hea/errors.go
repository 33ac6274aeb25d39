package hea

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies the errors returned by this package.
type Kind int

// Error kinds.
const (
	KindUnknown Kind = iota
	KindInvalidCompositionSize
	KindUnknownElement
	KindCompositionNotFound
	KindUnsupportedOperator
	KindInvalidColumn
	KindDuplicateComposition
	KindTableNotFound
	KindExecutor
)

var kindNames = map[Kind]string{
	KindUnknown:                "Unknown",
	KindInvalidCompositionSize: "InvalidCompositionSize",
	KindUnknownElement:         "UnknownElement",
	KindCompositionNotFound:    "CompositionNotFound",
	KindUnsupportedOperator:    "UnsupportedOperator",
	KindInvalidColumn:          "InvalidColumn",
	KindDuplicateComposition:   "DuplicateComposition",
	KindTableNotFound:          "TableNotFound",
	KindExecutor:               "ExecutorError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type kinded interface {
	Kind() Kind
}

// KindOf returns the kind of the first classified error in err's chain,
// or KindUnknown.
func KindOf(err error) Kind {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// InvalidCompositionSizeError reports input that does not reduce to exactly
// CompositionSize distinct symbols.
type InvalidCompositionSizeError struct {
	Count   int
	Symbols []string
}

func (e *InvalidCompositionSizeError) Error() string {
	return fmt.Sprintf("composition needs exactly %d distinct elements, got %d (%s)",
		CompositionSize, e.Count, strings.Join(e.Symbols, ", "))
}

// Kind implements kinded.
func (e *InvalidCompositionSizeError) Kind() Kind { return KindInvalidCompositionSize }

// UnknownElementError reports symbols outside the element enumeration.
type UnknownElementError struct {
	Symbols []string
	Valid   []string
}

func (e *UnknownElementError) Error() string {
	return fmt.Sprintf("unknown element(s) %s; valid elements: %s",
		strings.Join(e.Symbols, ", "), strings.Join(e.Valid, ", "))
}

// Kind implements kinded.
func (e *UnknownElementError) Kind() Kind { return KindUnknownElement }

// CompositionNotFoundError reports a valid set with no reference record.
type CompositionNotFoundError struct {
	Symbols []string
}

func (e *CompositionNotFoundError) Error() string {
	return fmt.Sprintf("no descriptor table registered for composition %s", compositionKey(e.Symbols))
}

// Kind implements kinded.
func (e *CompositionNotFoundError) Kind() Kind { return KindCompositionNotFound }

// UnsupportedOperatorError reports a filter operator outside the whitelist.
type UnsupportedOperatorError struct {
	Operator string
}

func (e *UnsupportedOperatorError) Error() string {
	ops := make([]string, len(supportedOperators))
	for i, op := range supportedOperators {
		ops[i] = string(op)
	}
	return fmt.Sprintf("unsupported operator %q (supported: %s)", e.Operator, strings.Join(ops, " "))
}

// Kind implements kinded.
func (e *UnsupportedOperatorError) Kind() Kind { return KindUnsupportedOperator }

// InvalidColumnError reports a column name that is not a plain identifier or
// is missing from the allow-list.
type InvalidColumnError struct {
	Column string
	Reason string
}

func (e *InvalidColumnError) Error() string {
	return fmt.Sprintf("invalid column %q: %s", e.Column, e.Reason)
}

// Kind implements kinded.
func (e *InvalidColumnError) Kind() Kind { return KindInvalidColumn }

// Duplicate is one element set registered under more than one table id.
type Duplicate struct {
	Key string
	IDs []int
}

// DuplicateCompositionError reports reference records that break set
// uniqueness.
type DuplicateCompositionError struct {
	Duplicates []Duplicate
}

func (e *DuplicateCompositionError) Error() string {
	parts := make([]string, len(e.Duplicates))
	for i, d := range e.Duplicates {
		parts[i] = fmt.Sprintf("%s %v", d.Key, d.IDs)
	}
	return fmt.Sprintf("%d composition(s) registered under multiple table ids: %s",
		len(e.Duplicates), strings.Join(parts, "; "))
}

// Kind implements kinded.
func (e *DuplicateCompositionError) Kind() Kind { return KindDuplicateComposition }

// TableNotFoundError reports a table id with no reference record or no
// descriptor table.
type TableNotFoundError struct {
	TableID int
	Table   string
	Err     error
}

func (e *TableNotFoundError) Error() string {
	msg := fmt.Sprintf("table id %d not found", e.TableID)
	if e.Table != "" {
		msg = fmt.Sprintf("descriptor table %s (id %d) not found", e.Table, e.TableID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TableNotFoundError) Unwrap() error { return e.Err }

// Kind implements kinded.
func (e *TableNotFoundError) Kind() Kind { return KindTableNotFound }

// ExecutorError wraps any other executor failure.
type ExecutorError struct {
	Op  string
	Err error
}

func (e *ExecutorError) Error() string {
	return fmt.Sprintf("executor failed to %s: %v", e.Op, e.Err)
}

func (e *ExecutorError) Unwrap() error { return e.Err }

// Kind implements kinded.
func (e *ExecutorError) Kind() Kind { return KindExecutor }
