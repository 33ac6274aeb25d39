package core

import (
	"context"
	"database/sql"
	"errors"
)

// ErrTableNotFound tags executor failures caused by a missing table or view.
// Adapters wrap driver errors with it so callers can use errors.Is without
// knowing the driver.
var ErrTableNotFound = errors.New("table not found")

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database.
	Connect(ctx context.Context, cfg AdapterConfig) error

	// Close closes the database connection.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string, args ...any) error

	// Query executes a SQL statement that returns rows.
	// Values in args are passed to the driver as bound parameters.
	Query(ctx context.Context, sql string, args ...any) (*Rows, error)

	// GetTableMetadata retrieves metadata for a table.
	GetTableMetadata(ctx context.Context, table string) (*TableMetadata, error)

	// DialectName returns the SQL dialect spoken by the adapter.
	DialectName() string

	// FormatPlaceholder returns the bound parameter placeholder for the
	// 1-based position n ("?" or "$n").
	FormatPlaceholder(n int) string
}

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type     string
	Path     string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Schema   string
	Options  map[string]string
	Params   map[string]any
}

// Column represents a column in a database table.
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Position int
}

// TableMetadata holds metadata about a database table.
type TableMetadata struct {
	Schema  string
	Name    string
	Columns []Column
}

// ColumnNames returns the column names in ordinal order.
func (m *TableMetadata) ColumnNames() []string {
	names := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		names[i] = c.Name
	}
	return names
}

// Rows wraps sql.Rows to provide a consistent interface.
type Rows struct {
	*sql.Rows
}
