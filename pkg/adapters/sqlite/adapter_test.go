package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/healake/pkg/core"
	"github.com/leapstack-labs/healake/pkg/hea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectMemory(t *testing.T) (context.Context, *Adapter) {
	t.Helper()
	ctx := context.Background()
	adp := New(nil)
	require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Path: ":memory:"}))
	t.Cleanup(func() { _ = adp.Close() })

	require.NoError(t, adp.Exec(ctx, `CREATE TABLE hea_6_c_3 (con_index INTEGER NOT NULL, ave_fe1 REAL, hmix_data REAL)`))
	require.NoError(t, adp.Exec(ctx, `INSERT INTO hea_6_c_3 VALUES (1, 1.9, -3.5), (2, 1.2, -8.0)`))
	return ctx, adp
}

func TestAdapter_QueryWithBoundArgs(t *testing.T) {
	ctx, adp := connectMemory(t)

	rows, err := adp.Query(ctx, `SELECT con_index FROM hea_6_c_3 WHERE ave_fe1 > ? LIMIT ?`, 1.5, 10)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var ids []int
	for rows.Next() {
		var id int
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []int{1}, ids)
}

func TestAdapter_QueryMissingTableIsTagged(t *testing.T) {
	ctx, adp := connectMemory(t)

	_, err := adp.Query(ctx, `SELECT con_index FROM hea_6_c_77`)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTableNotFound)
}

func TestAdapter_CountDescriptorTables(t *testing.T) {
	ctx, adp := connectMemory(t)
	require.NoError(t, adp.Exec(ctx, `CREATE TABLE hea_6_c_4 (con_index INTEGER)`))
	require.NoError(t, adp.Exec(ctx, `CREATE TABLE hea_6_cx (con_index INTEGER)`))
	require.NoError(t, adp.Exec(ctx, `CREATE VIEW hea_6_c_5 AS SELECT * FROM hea_6_c_3`))

	client, err := hea.NewClient(adp, hea.Config{})
	require.NoError(t, err)

	n, err := client.CountTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "underscores in the prefix must not act as wildcards")
}

func TestAdapter_GetTableMetadata(t *testing.T) {
	ctx, adp := connectMemory(t)

	meta, err := adp.GetTableMetadata(ctx, "hea_6_c_3")
	require.NoError(t, err)
	assert.Equal(t, []string{"con_index", "ave_fe1", "hmix_data"}, meta.ColumnNames())
	assert.Equal(t, 1, meta.Columns[0].Position)
	assert.False(t, meta.Columns[0].Nullable)
	assert.True(t, meta.Columns[1].Nullable)

	_, err = adp.GetTableMetadata(ctx, "hea_6_c_77")
	assert.ErrorIs(t, err, core.ErrTableNotFound)
}

func TestAdapter_ConnectReadOnlyFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "extract.db")

	writer := New(nil)
	require.NoError(t, writer.Connect(ctx, core.AdapterConfig{Path: path, Options: map[string]string{"mode": "rwc"}}))
	require.NoError(t, writer.Exec(ctx, `CREATE TABLE descriptor_names (name TEXT, description TEXT)`))
	require.NoError(t, writer.Close())

	reader := New(nil)
	require.NoError(t, reader.Connect(ctx, core.AdapterConfig{Path: path}))
	defer func() { _ = reader.Close() }()

	err := reader.Exec(ctx, `INSERT INTO descriptor_names VALUES ('x', 'y')`)
	assert.Error(t, err, "extracts open read-only by default")
	assert.Equal(t, "sqlite", reader.DialectName())
	assert.Equal(t, "?", reader.FormatPlaceholder(3))
}
