package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/healake/pkg/core"
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Exec, and Query implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger

	// IsTableNotFound reports whether a driver error means the referenced
	// table does not exist. Matching errors are wrapped with core.ErrTableNotFound.
	IsTableNotFound func(error) bool
}

func (b *BaseSQLAdapter) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		b.logger().Debug("closing database connection")
		return b.DB.Close()
	}
	return nil
}

// Exec executes a SQL statement that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, sqlStr string, args ...any) error {
	if b.DB == nil {
		return fmt.Errorf("database connection not established")
	}
	_, err := b.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return b.wrapError("failed to execute SQL", err)
	}
	return nil
}

// Query executes a SQL statement that returns rows.
func (b *BaseSQLAdapter) Query(ctx context.Context, sqlStr string, args ...any) (*core.Rows, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}
	b.logger().Debug("executing query", slog.String("sql", sqlStr), slog.Int("args", len(args)))
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := b.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, b.wrapError("failed to execute query", err)
	}
	return &core.Rows{Rows: rows}, nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// FormatPlaceholder returns the "?" placeholder used by DuckDB and SQLite.
// Adapters with numbered placeholders override it.
func (b *BaseSQLAdapter) FormatPlaceholder(_ int) string {
	return "?"
}

func (b *BaseSQLAdapter) wrapError(msg string, err error) error {
	if b.IsTableNotFound != nil && b.IsTableNotFound(err) {
		return fmt.Errorf("%s: %w: %w", msg, core.ErrTableNotFound, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// ParseQualifiedName splits a table reference into schema and name.
// Uses defaultSchema if not specified.
func ParseQualifiedName(table, defaultSchema string) (schema, name string) {
	if parts := strings.Split(table, "."); len(parts) == 2 {
		return parts[0], parts[1]
	}
	return defaultSchema, table
}

// GetTableMetadataCommon provides a shared implementation of GetTableMetadata.
// Uses information_schema.columns with the adapter's placeholders.
func (b *BaseSQLAdapter) GetTableMetadataCommon(ctx context.Context, table, defaultSchema string, placeholder func(int) string) (*core.TableMetadata, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	schema, tableName := ParseQualifiedName(table, defaultSchema)

	//nolint:gosec // Placeholders are safe - they come from FormatPlaceholder
	query := fmt.Sprintf(`
		SELECT 
			column_name,
			data_type,
			is_nullable,
			ordinal_position
		FROM information_schema.columns 
		WHERE table_schema = %s AND table_name = %s
		ORDER BY ordinal_position
	`, placeholder(1), placeholder(2))

	rows, err := b.DB.QueryContext(ctx, query, schema, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []core.Column
	for rows.Next() {
		var col core.Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable, &col.Position); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s: %w", table, core.ErrTableNotFound)
	}

	return &core.TableMetadata{
		Schema:  schema,
		Name:    tableName,
		Columns: columns,
	}, nil
}
