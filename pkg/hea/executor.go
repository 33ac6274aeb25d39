package hea

import (
	"context"
	"errors"
	"fmt"

	"github.com/leapstack-labs/healake/pkg/core"
)

// Executor runs a parameterized query and returns its rows. Every adapter in
// pkg/adapters satisfies it.
type Executor interface {
	Query(ctx context.Context, query string, args ...any) (*core.Rows, error)
}

// PlaceholderFormatter is implemented by executors whose dialect does not
// use "?" placeholders.
type PlaceholderFormatter interface {
	FormatPlaceholder(n int) string
}

func questionMark(int) string { return "?" }

func placeholderFor(exec Executor) func(int) string {
	if pf, ok := exec.(PlaceholderFormatter); ok {
		return pf.FormatPlaceholder
	}
	return questionMark
}

// dialectNamer is implemented by executors that report their SQL dialect.
type dialectNamer interface {
	DialectName() string
}

// dialectOf returns the executor's dialect, or "" when it does not say.
func dialectOf(exec Executor) string {
	if d, ok := exec.(dialectNamer); ok {
		return d.DialectName()
	}
	return ""
}

// readRows drains rows into positional slices and closes them.
func readRows(rows *core.Rows) ([]string, [][]any, error) {
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var out [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return cols, out, nil
}

// tableError re-tags executor failures that mean the descriptor table does
// not exist.
func tableError(op string, id TableID, table string, err error) error {
	if errors.Is(err, core.ErrTableNotFound) {
		return &TableNotFoundError{TableID: id.n, Table: table, Err: err}
	}
	return &ExecutorError{Op: op, Err: err}
}
