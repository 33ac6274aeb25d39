package hea

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

// Config configures a Client. The zero value uses the six-element lake
// defaults.
type Config struct {
	Schema         Schema
	Elements       []string
	DefaultColumns []string
	AllowedColumns []string
	DefaultLimit   int
	MaxLimit       int
	// UseIndex selects IndexResolver instead of ScanResolver.
	UseIndex bool
	Logger   *slog.Logger
}

// Client resolves compositions and queries their descriptor tables through
// an Executor.
type Client struct {
	exec     Executor
	schema   Schema
	elements ElementSet
	resolver Resolver
	opts     BuildOptions
	logger   *slog.Logger
}

// Result is the outcome of a descriptor query. Each row is aligned with
// Columns.
type Result struct {
	Composition Composition
	Columns     []string
	Rows        [][]any
}

// Descriptor documents one descriptor column.
type Descriptor struct {
	Name        string
	Description string
}

// NewClient creates a Client over exec.
func NewClient(exec Executor, cfg Config) (*Client, error) {
	if exec == nil {
		return nil, fmt.Errorf("executor is required")
	}

	schema := cfg.Schema
	if schema == (Schema{}) {
		schema = DefaultSchema()
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	symbols := cfg.Elements
	if len(symbols) == 0 {
		symbols = DefaultElements
	}
	elements := NewElementSet(symbols...)

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var resolver Resolver
	if cfg.UseIndex {
		resolver = NewIndexResolver(exec, schema, elements, logger)
	} else {
		resolver = NewScanResolver(exec, schema, elements, logger)
	}

	return &Client{
		exec:     exec,
		schema:   schema,
		elements: elements,
		resolver: resolver,
		opts: BuildOptions{
			DefaultColumns: cfg.DefaultColumns,
			DefaultLimit:   cfg.DefaultLimit,
			MaxLimit:       cfg.MaxLimit,
			AllowedColumns: cfg.AllowedColumns,
			Placeholder:    placeholderFor(exec),
		},
		logger: logger,
	}, nil
}

// Schema returns the table names the client queries.
func (c *Client) Schema() Schema { return c.schema }

// Elements returns the valid element symbols in sorted order.
func (c *Client) Elements() []string { return c.elements.Symbols() }

// Resolve maps an unordered set of element symbols to its composition.
func (c *Client) Resolve(ctx context.Context, symbols []string) (Composition, error) {
	return c.resolver.Resolve(ctx, symbols)
}

// Lookup validates a raw table id against the reference table.
func (c *Client) Lookup(ctx context.Context, id int) (Composition, error) {
	return Lookup(ctx, c.exec, c.schema, id)
}

// BuildQuery builds the query for id without running it.
func (c *Client) BuildQuery(id TableID, req Request) (*Query, error) {
	return BuildQuery(c.schema, id, req, c.opts)
}

// BuildAndRun builds the query for comp and dispatches it.
func (c *Client) BuildAndRun(ctx context.Context, comp Composition, req Request) (*Result, error) {
	q, err := c.BuildQuery(comp.ID, req)
	if err != nil {
		return nil, err
	}

	table := c.schema.DescriptorTable(comp.ID)
	c.logger.Debug("querying descriptor table",
		slog.String("table", table),
		slog.Int("filters", len(req.Filters)),
		slog.Bool("concentration", req.WithConcentration))

	rows, err := c.exec.Query(ctx, q.Text, q.Args...)
	if err != nil {
		return nil, tableError("query "+table, comp.ID, table, err)
	}
	_, data, err := readRows(rows)
	if err != nil {
		return nil, &ExecutorError{Op: "read " + table, Err: err}
	}

	return &Result{Composition: comp, Columns: q.Columns, Rows: data}, nil
}

// QueryByElements resolves symbols and queries the matching descriptor table.
func (c *Client) QueryByElements(ctx context.Context, symbols []string, req Request) (*Result, error) {
	comp, err := c.Resolve(ctx, symbols)
	if err != nil {
		return nil, err
	}
	return c.BuildAndRun(ctx, comp, req)
}

// QueryByID validates id and queries its descriptor table.
func (c *Client) QueryByID(ctx context.Context, id int, req Request) (*Result, error) {
	comp, err := c.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.BuildAndRun(ctx, comp, req)
}

// Descriptors lists the documented descriptor columns.
func (c *Client) Descriptors(ctx context.Context) ([]Descriptor, error) {
	table := c.schema.DescriptorNamesTable
	query := fmt.Sprintf("SELECT name, description FROM %s ORDER BY name", table)

	rows, err := c.exec.Query(ctx, query)
	if err != nil {
		return nil, &ExecutorError{Op: "read " + table, Err: err}
	}
	defer func() { _ = rows.Close() }()

	var out []Descriptor
	for rows.Next() {
		var name string
		var desc sql.NullString
		if err := rows.Scan(&name, &desc); err != nil {
			return nil, &ExecutorError{Op: "read " + table, Err: err}
		}
		out = append(out, Descriptor{Name: name, Description: desc.String})
	}
	if err := rows.Err(); err != nil {
		return nil, &ExecutorError{Op: "read " + table, Err: err}
	}
	return out, nil
}

// CountTables counts the descriptor tables present in the catalog. SQLite has
// no information_schema, so it is asked through sqlite_master.
func (c *Client) CountTables(ctx context.Context) (int, error) {
	catalog := "information_schema.tables WHERE table_name"
	if dialectOf(c.exec) == "sqlite" {
		catalog = "sqlite_master WHERE type IN ('table', 'view') AND name"
	}
	query := "SELECT COUNT(*) FROM " + catalog + " LIKE " + placeholderFor(c.exec)(1) + ` ESCAPE '\'`

	rows, err := c.exec.Query(ctx, query, likePrefix(c.schema.DescriptorPrefix))
	if err != nil {
		return 0, &ExecutorError{Op: "count descriptor tables", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, &ExecutorError{Op: "count descriptor tables", Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return 0, &ExecutorError{Op: "count descriptor tables", Err: err}
	}
	return int(n), nil
}

// CheckUnique reports reference records that share an element set.
func (c *Client) CheckUnique(ctx context.Context) error {
	return CheckUnique(ctx, c.exec, c.schema)
}

func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}
