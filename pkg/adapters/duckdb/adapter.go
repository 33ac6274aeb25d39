// Package duckdb provides the DuckDB database adapter for healake.
package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/leapstack-labs/healake/pkg/adapter"

	"github.com/marcboeker/go-duckdb"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
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
	return "duckdb"
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" as the path for an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	params, err := parseParams(cfg.Params)
	if err != nil {
		return err
	}

	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	a.Logger.Debug("connecting to duckdb", slog.String("path", path))

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	a.DB = db
	a.Cfg = cfg

	if err := a.applyParams(ctx, params); err != nil {
		_ = db.Close()
		a.DB = nil
		return err
	}

	return nil
}

// applyParams runs the session setup in dependency order: extensions,
// settings, secrets, attached catalogs, then USE.
func (a *Adapter) applyParams(ctx context.Context, params *Params) error {
	for _, ext := range params.Extensions {
		if !identifierPattern.MatchString(ext) {
			return fmt.Errorf("invalid extension name %q", ext)
		}
		a.Logger.Debug("loading duckdb extension", slog.String("extension", ext))
		if err := a.Exec(ctx, "INSTALL "+ext); err != nil {
			return fmt.Errorf("failed to install extension %s: %w", ext, err)
		}
		if err := a.Exec(ctx, "LOAD "+ext); err != nil {
			return fmt.Errorf("failed to load extension %s: %w", ext, err)
		}
	}

	for key, value := range params.Settings {
		if !identifierPattern.MatchString(key) {
			return fmt.Errorf("invalid setting name %q", key)
		}
		if err := a.Exec(ctx, fmt.Sprintf("SET %s = %s", key, quoteLiteral(value))); err != nil {
			return fmt.Errorf("failed to apply setting %s: %w", key, err)
		}
	}

	for i, secret := range params.Secrets {
		if err := a.Exec(ctx, buildCreateSecretSQL(secret)); err != nil {
			return fmt.Errorf("failed to create secret %d (%s): %w", i, secret.Type, err)
		}
	}

	for _, att := range params.Attach {
		stmt, err := buildAttachSQL(att)
		if err != nil {
			return err
		}
		a.Logger.Debug("attaching catalog", slog.String("alias", att.Alias), slog.String("path", att.Path))
		if err := a.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to attach %s: %w", att.Alias, err)
		}
	}

	if params.Use != "" {
		if !identifierPattern.MatchString(params.Use) {
			return fmt.Errorf("invalid catalog name %q", params.Use)
		}
		if err := a.Exec(ctx, "USE "+params.Use); err != nil {
			return fmt.Errorf("failed to use catalog %s: %w", params.Use, err)
		}
	}

	return nil
}

// GetTableMetadata retrieves metadata for a specified table.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	return a.GetTableMetadataCommon(ctx, table, "main", a.FormatPlaceholder)
}

// buildCreateSecretSQL renders a CREATE SECRET statement for cfg.
func buildCreateSecretSQL(cfg SecretConfig) string {
	parts := []string{"TYPE " + cfg.Type}

	if cfg.Provider != "" {
		parts = append(parts, "PROVIDER "+cfg.Provider)
	}
	if cfg.Region != "" {
		parts = append(parts, "REGION "+quoteLiteral(cfg.Region))
	}
	if scope := formatScope(cfg.Scope); scope != "" {
		parts = append(parts, "SCOPE "+scope)
	}
	if cfg.KeyID != "" {
		parts = append(parts, "KEY_ID "+quoteLiteral(cfg.KeyID))
	}
	if cfg.Secret != "" {
		parts = append(parts, "SECRET "+quoteLiteral(cfg.Secret))
	}
	if cfg.Endpoint != "" {
		parts = append(parts, "ENDPOINT "+quoteLiteral(cfg.Endpoint))
	}
	if cfg.URLStyle != "" {
		parts = append(parts, "URL_STYLE "+quoteLiteral(cfg.URLStyle))
	}
	if cfg.UseSSL != nil {
		parts = append(parts, fmt.Sprintf("USE_SSL %t", *cfg.UseSSL))
	}

	return "CREATE SECRET (\n    " + strings.Join(parts, ",\n    ") + "\n)"
}

func formatScope(scope any) string {
	switch s := scope.(type) {
	case nil:
		return ""
	case string:
		if s == "" {
			return ""
		}
		return quoteLiteral(s)
	case []string:
		quoted := make([]string, len(s))
		for i, v := range s {
			quoted[i] = quoteLiteral(v)
		}
		return "(" + strings.Join(quoted, ", ") + ")"
	case []any:
		quoted := make([]string, len(s))
		for i, v := range s {
			quoted[i] = quoteLiteral(fmt.Sprint(v))
		}
		return "(" + strings.Join(quoted, ", ") + ")"
	default:
		return quoteLiteral(fmt.Sprint(s))
	}
}

// buildAttachSQL renders an ATTACH statement for cfg.
func buildAttachSQL(cfg AttachConfig) (string, error) {
	if cfg.Path == "" {
		return "", fmt.Errorf("attach path is required")
	}
	if !identifierPattern.MatchString(cfg.Alias) {
		return "", fmt.Errorf("invalid attach alias %q", cfg.Alias)
	}

	var opts []string
	if cfg.DataPath != "" {
		opts = append(opts, "DATA_PATH "+quoteLiteral(cfg.DataPath))
	}
	if cfg.ReadOnly {
		opts = append(opts, "READ_ONLY")
	}

	stmt := fmt.Sprintf("ATTACH %s AS %s", quoteLiteral(cfg.Path), cfg.Alias)
	if len(opts) > 0 {
		stmt += " (" + strings.Join(opts, ", ") + ")"
	}
	return stmt, nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// isTableNotFound reports whether err is DuckDB's missing-table catalog error.
func isTableNotFound(err error) bool {
	var dErr *duckdb.Error
	if errors.As(err, &dErr) {
		return dErr.Type == duckdb.ErrorTypeCatalog && strings.Contains(dErr.Msg, "does not exist")
	}
	msg := err.Error()
	return strings.Contains(msg, "Catalog Error") && strings.Contains(msg, "does not exist")
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
