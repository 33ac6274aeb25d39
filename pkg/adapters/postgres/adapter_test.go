package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/leapstack-labs/healake/pkg/adapter"
	"github.com/leapstack-labs/healake/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   adapter.Config
		expected string
	}{
		{
			name: "basic connection",
			config: adapter.Config{
				Host:     "localhost",
				Port:     5432,
				Database: "testdb",
				Username: "user",
				Password: "pass",
			},
			expected: "host=localhost port=5432 dbname=testdb sslmode=disable user=user password=pass",
		},
		{
			name: "with custom sslmode",
			config: adapter.Config{
				Host:     "prod.example.com",
				Port:     5432,
				Database: "proddb",
				Username: "admin",
				Options:  map[string]string{"sslmode": "require"},
			},
			expected: "host=prod.example.com port=5432 dbname=proddb sslmode=require user=admin",
		},
		{
			name: "defaults",
			config: adapter.Config{
				Database: "mydb",
			},
			expected: "host=localhost port=5432 dbname=mydb sslmode=disable",
		},
		{
			name: "custom port",
			config: adapter.Config{
				Host:     "db.example.com",
				Port:     5433,
				Database: "analytics",
				Username: "analyst",
			},
			expected: "host=db.example.com port=5433 dbname=analytics sslmode=disable user=analyst",
		},
		{
			name: "mirrored lake schema",
			config: adapter.Config{
				Database: "materials",
				Schema:   "hea",
			},
			expected: "host=localhost port=5432 dbname=materials sslmode=disable search_path=hea",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := buildPostgresDSN(tt.config)
			assert.Equal(t, tt.expected, dsn)
		})
	}
}

func TestFormatPlaceholder(t *testing.T) {
	adp := New(nil)
	assert.Equal(t, "$1", adp.FormatPlaceholder(1))
	assert.Equal(t, "$12", adp.FormatPlaceholder(12))
}

func TestIsTableNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"undefined table", &pgconn.PgError{Code: "42P01", Message: `relation "hea_6_c_9" does not exist`}, true},
		{"wrapped undefined table", fmt.Errorf("query: %w", &pgconn.PgError{Code: "42P01"}), true},
		{"undefined column", &pgconn.PgError{Code: "42703"}, false},
		{"plain error", errors.New("relation does not exist"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTableNotFound(tt.err))
		})
	}
}

func TestAdapter_QueryTagsUndefinedTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT con_index FROM hea_6_c_9").
		WithArgs(10).
		WillReturnError(&pgconn.PgError{Code: "42P01"})

	adp := New(nil)
	adp.DB = db

	_, err = adp.Query(context.Background(), "SELECT con_index FROM hea_6_c_9 LIMIT $1", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTableNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew(t *testing.T) {
	adp := New(nil)

	assert.NotNil(t, adp, "New() should return non-nil adapter")
	assert.Nil(t, adp.DB, "DB should be nil before Connect")
	assert.False(t, adp.IsConnected(), "should not be connected initially")
	assert.Equal(t, "postgres", adp.DialectName(), "dialect name should be postgres")

	// Verify interface compliance
	var _ adapter.Adapter = (*Adapter)(nil)
	var _ adapter.Adapter = adp
}

func TestAdapter_NotConnected(t *testing.T) {
	tests := []struct {
		name      string
		operation func(ctx context.Context, adp *Adapter) error
		errMsg    string
	}{
		{
			name: "exec without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				return adp.Exec(ctx, "SELECT 1")
			},
			errMsg: "not established",
		},
		{
			name: "query without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				_, err := adp.Query(ctx, "SELECT 1")
				return err
			},
			errMsg: "not established",
		},
		{
			name: "get metadata without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				_, err := adp.GetTableMetadata(ctx, "hea_con_6")
				return err
			},
			errMsg: "not established",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			adp := New(nil)

			err := tt.operation(ctx, adp)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestAdapter_Registry(t *testing.T) {
	assert.True(t, adapter.IsRegistered("postgres"), "postgres adapter should be registered")

	factory, ok := adapter.Get("postgres")
	require.True(t, ok, "should be able to get postgres factory")

	adp := factory(nil)
	assert.NotNil(t, adp)

	pg, ok := adp.(*Adapter)
	assert.True(t, ok, "factory should return *Adapter")
	assert.NotNil(t, pg)
	assert.Equal(t, "postgres", pg.DialectName())
}

func TestAdapter_Close(t *testing.T) {
	// Close should not error even without connection
	adp := New(nil)
	assert.NoError(t, adp.Close())
}
