// Package sqlite provides a SQLite database adapter for healake.
//
// It is meant for local extracts of the lake (a handful of descriptor tables
// plus the reference tables) copied into a single SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/healake/pkg/adapter"
	"github.com/leapstack-labs/healake/pkg/core"

	_ "modernc.org/sqlite" // sqlite driver
)

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{
			Logger:          logger,
			IsTableNotFound: isTableNotFound,
		},
	}
}

// DialectName returns the SQL dialect for this adapter.
func (a *Adapter) DialectName() string {
	return "sqlite"
}

// Connect opens the SQLite database at cfg.Path. Extracts are opened
// read-only unless the "mode" option says otherwise.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	dsn := path
	if path != ":memory:" {
		mode := "ro"
		if m, ok := cfg.Options["mode"]; ok {
			mode = m
		}
		dsn = fmt.Sprintf("file:%s?mode=%s", path, mode)
	}

	a.Logger.Debug("connecting to sqlite", slog.String("path", path))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite connection: %w", err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// GetTableMetadata retrieves metadata for a specified table using
// pragma_table_info, since SQLite has no information_schema.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	if a.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	_, tableName := adapter.ParseQualifiedName(table, "main")

	rows, err := a.DB.QueryContext(ctx,
		`SELECT cid, name, type, "notnull" FROM pragma_table_info(?) ORDER BY cid`, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []core.Column
	for rows.Next() {
		var col core.Column
		var notNull int
		if err := rows.Scan(&col.Position, &col.Name, &col.Type, &notNull); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Position++
		col.Nullable = notNull == 0
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s: %w", table, core.ErrTableNotFound)
	}

	return &core.TableMetadata{
		Schema:  "main",
		Name:    tableName,
		Columns: columns,
	}, nil
}

func isTableNotFound(err error) bool {
	return strings.Contains(err.Error(), "no such table")
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
