package hea

import (
	"fmt"
	"strings"
)

// Query limits.
const (
	DefaultLimit = 10
	MaxLimit     = 10000
)

// DefaultDescriptorColumns are selected, after con_index, when a request
// names no columns.
var DefaultDescriptorColumns = []string{"ave_fe1", "ave_fe2", "hmix_data"}

// Request describes a query against one descriptor table.
type Request struct {
	// Columns to select; empty means con_index plus the default columns.
	Columns []string
	// Filters are ANDed together.
	Filters []Filter
	// WithConcentration joins the concentration table and appends con1..con6.
	WithConcentration bool
	// Limit caps the row count; <= 0 means the default.
	Limit int
}

// BuildOptions tunes BuildQuery. The zero value uses the package defaults.
type BuildOptions struct {
	DefaultColumns []string
	DefaultLimit   int
	MaxLimit       int
	// AllowedColumns, when non-empty, restricts selectable and filterable
	// columns on top of the identifier check.
	AllowedColumns []string
	// Placeholder formats the n-th (1-based) bound parameter; nil means "?".
	Placeholder func(n int) string
}

func (o BuildOptions) withDefaults() BuildOptions {
	if len(o.DefaultColumns) == 0 {
		o.DefaultColumns = DefaultDescriptorColumns
	}
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = DefaultLimit
	}
	if o.MaxLimit <= 0 {
		o.MaxLimit = MaxLimit
	}
	if o.Placeholder == nil {
		o.Placeholder = questionMark
	}
	return o
}

// Query is built query text with its bound arguments.
type Query struct {
	Text string
	Args []any
	// Columns are the result column names in select order.
	Columns []string
}

// BuildQuery builds the select for the descriptor table of id. It does not
// touch any executor; every caller-supplied value ends up in Args.
func BuildQuery(schema Schema, id TableID, req Request, opts BuildOptions) (*Query, error) {
	if id.IsZero() {
		return nil, &TableNotFoundError{TableID: 0}
	}
	opts = opts.withDefaults()

	var allowed map[string]struct{}
	if len(opts.AllowedColumns) > 0 {
		allowed = make(map[string]struct{}, len(opts.AllowedColumns))
		for _, c := range opts.AllowedColumns {
			allowed[c] = struct{}{}
		}
	}
	checkColumn := func(col string) error {
		if !identifierPattern.MatchString(col) {
			return &InvalidColumnError{Column: col, Reason: "not a plain identifier"}
		}
		if allowed != nil {
			if _, ok := allowed[col]; !ok {
				return &InvalidColumnError{Column: col, Reason: "not in the allowed column list"}
			}
		}
		return nil
	}

	columns := req.Columns
	if len(columns) == 0 {
		columns = append([]string{ColumnConIndex}, opts.DefaultColumns...)
	}
	for _, col := range columns {
		if err := checkColumn(col); err != nil {
			return nil, err
		}
	}
	for _, f := range req.Filters {
		if !f.Op.Valid() {
			return nil, &UnsupportedOperatorError{Operator: string(f.Op)}
		}
		if err := checkColumn(f.Column); err != nil {
			return nil, err
		}
	}

	table := schema.DescriptorTable(id)
	selects := make([]string, 0, len(columns)+CompositionSize)
	outCols := make([]string, 0, len(columns)+CompositionSize)
	for _, col := range columns {
		selects = append(selects, table+"."+col)
		outCols = append(outCols, col)
	}
	if req.WithConcentration {
		for _, col := range ConcentrationColumns() {
			selects = append(selects, schema.ConcentrationTable+"."+col)
			outCols = append(outCols, col)
		}
	}

	var sb strings.Builder
	var args []any
	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(selects, ", "), table)
	if req.WithConcentration {
		fmt.Fprintf(&sb, " LEFT JOIN %s ON %s.%s = %s.%s",
			schema.ConcentrationTable, table, ColumnConIndex, schema.ConcentrationTable, columnID)
	}
	for i, f := range req.Filters {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		args = append(args, f.Value)
		fmt.Fprintf(&sb, "%s.%s %s %s", table, f.Column, f.Op, opts.Placeholder(len(args)))
	}

	limit := req.Limit
	if limit <= 0 {
		limit = opts.DefaultLimit
	}
	if limit > opts.MaxLimit {
		limit = opts.MaxLimit
	}
	args = append(args, limit)
	fmt.Fprintf(&sb, " LIMIT %s", opts.Placeholder(len(args)))

	return &Query{Text: sb.String(), Args: args, Columns: outCols}, nil
}
