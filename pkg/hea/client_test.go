package hea

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/healake/internal/testutil"
	"github.com/leapstack-labs/healake/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultDescriptorSQL = "SELECT hea_6_c_1.con_index, hea_6_c_1.ave_fe1, hea_6_c_1.ave_fe2, hea_6_c_1.hmix_data FROM hea_6_c_1 LIMIT ?"

func newMockClient(t *testing.T, cfg Config) (*Client, sqlmock.Sqlmock) {
	t.Helper()
	exec, mock := newMockExecutor(t)
	if cfg.Logger == nil {
		cfg.Logger = testutil.NewTestLogger(t)
	}
	c, err := NewClient(exec, cfg)
	require.NoError(t, err)
	return c, mock
}

func TestNewClient(t *testing.T) {
	exec, _ := newMockExecutor(t)

	c, err := NewClient(exec, Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultSchema(), c.Schema())
	assert.Len(t, c.Elements(), 15)

	_, err = NewClient(nil, Config{})
	assert.Error(t, err)

	bad := DefaultSchema()
	bad.DescriptorPrefix = "hea-6-c-"
	_, err = NewClient(exec, Config{Schema: bad})
	assert.ErrorContains(t, err, "descriptor prefix")
}

func TestClient_QueryByElements(t *testing.T) {
	c, mock := newMockClient(t, Config{})

	mock.ExpectQuery(combinationSQL).WillReturnRows(referenceRows())
	mock.ExpectQuery(defaultDescriptorSQL).WithArgs(10).WillReturnRows(
		sqlmock.NewRows([]string{"con_index", "ave_fe1", "ave_fe2", "hmix_data"}).
			AddRow(int64(1), 1.71, 0.33, -4.2).
			AddRow(int64(2), []byte("1.80"), nil, -3.9),
	)

	res, err := c.QueryByElements(context.Background(), []string{"hf", "fe", "cu", "cr", "co", "al"}, Request{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Composition.ID.Int())
	assert.Equal(t, []string{"con_index", "ave_fe1", "ave_fe2", "hmix_data"}, res.Columns)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, []any{int64(1), 1.71, 0.33, -4.2}, res.Rows[0])
	assert.Equal(t, "1.80", res.Rows[1][1], "[]byte values are returned as strings")
	assert.Nil(t, res.Rows[1][2])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_QueryWithFiltersAndConcentration(t *testing.T) {
	c, mock := newMockClient(t, Config{UseIndex: true})

	wantSQL := "SELECT hea_6_c_2.con_index, hea_6_c_2.ave_fe1, " +
		"hea_con_6.con1, hea_con_6.con2, hea_con_6.con3, hea_con_6.con4, hea_con_6.con5, hea_con_6.con6 " +
		"FROM hea_6_c_2 LEFT JOIN hea_con_6 ON hea_6_c_2.con_index = hea_con_6.id " +
		"WHERE hea_6_c_2.ave_fe1 > ? LIMIT ?"

	mock.ExpectQuery(combinationSQL).WillReturnRows(referenceRows())
	mock.ExpectQuery(wantSQL).WithArgs(1.7, 3).WillReturnRows(
		sqlmock.NewRows([]string{"con_index", "ave_fe1", "con1", "con2", "con3", "con4", "con5", "con6"}).
			AddRow(int64(5), 1.9, 0.1, 0.1, 0.2, 0.2, 0.2, 0.2).
			AddRow(int64(6), 2.0, nil, nil, nil, nil, nil, nil),
	)

	filter, err := ParseFilter("ave_fe1>1.7")
	require.NoError(t, err)

	res, err := c.QueryByElements(context.Background(), []string{"Al", "Co", "Cr", "Cu", "Fe", "Mn"}, Request{
		Columns:           []string{"con_index", "ave_fe1"},
		Filters:           []Filter{filter},
		WithConcentration: true,
		Limit:             3,
	})
	require.NoError(t, err)

	assert.Len(t, res.Columns, 8)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, []any{int64(6), 2.0, nil, nil, nil, nil, nil, nil}, res.Rows[1])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_UnsupportedOperatorSkipsExecutor(t *testing.T) {
	c, mock := newMockClient(t, Config{})

	_, err := c.BuildAndRun(context.Background(), Composition{ID: TableID{n: 1}}, Request{
		Filters: []Filter{{Column: "ave_fe1", Op: "LIKE", Value: "1%"}},
	})

	var opErr *UnsupportedOperatorError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "LIKE", opErr.Operator)
	assert.Contains(t, err.Error(), "= != < <= > >=")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_InvalidCompositionSkipsExecutor(t *testing.T) {
	c, mock := newMockClient(t, Config{})

	_, err := c.QueryByElements(context.Background(), []string{"Al", "Co", "Cr", "Cu", "Fe"}, Request{})
	assert.Equal(t, KindInvalidCompositionSize, KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_MissingDescriptorTable(t *testing.T) {
	c, mock := newMockClient(t, Config{})

	mock.ExpectQuery(combinationSQL + " WHERE id = ?").WithArgs(1).
		WillReturnRows(combinationRows(record(1, "Al", "Co", "Cr", "Cu", "Fe", "Hf")))
	mock.ExpectQuery(defaultDescriptorSQL).WithArgs(10).WillReturnError(errMissingTable)

	_, err := c.QueryByID(context.Background(), 1, Request{})

	var notFound *TableNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 1, notFound.TableID)
	assert.Equal(t, "hea_6_c_1", notFound.Table)
	assert.ErrorIs(t, err, core.ErrTableNotFound)
	assert.ErrorIs(t, err, errMissingTable)
}

func TestClient_ExecutorFailureIsWrapped(t *testing.T) {
	c, mock := newMockClient(t, Config{})
	cause := errors.New("IO Error: could not read s3 object")

	mock.ExpectQuery(defaultDescriptorSQL).WithArgs(10).WillReturnError(cause)

	_, err := c.BuildAndRun(context.Background(), Composition{ID: TableID{n: 1}}, Request{})

	var execErr *ExecutorError
	require.ErrorAs(t, err, &execErr)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, core.ErrTableNotFound)

	wrapped := fmt.Errorf("cli: %w", err)
	assert.Equal(t, KindExecutor, KindOf(wrapped))
}

func TestClient_Descriptors(t *testing.T) {
	c, mock := newMockClient(t, Config{})

	mock.ExpectQuery("SELECT name, description FROM descriptor_names ORDER BY name").WillReturnRows(
		sqlmock.NewRows([]string{"name", "description"}).
			AddRow("ave_fe1", "average formation energy, first shell").
			AddRow("hmix_data", nil),
	)

	got, err := c.Descriptors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Descriptor{
		{Name: "ave_fe1", Description: "average formation energy, first shell"},
		{Name: "hmix_data"},
	}, got)
}

func TestClient_CountTables(t *testing.T) {
	c, mock := newMockClient(t, Config{})

	mock.ExpectQuery(`SELECT COUNT(*) FROM information_schema.tables WHERE table_name LIKE ? ESCAPE '\'`).
		WithArgs(`hea\_6\_c\_%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5005)))

	n, err := c.CountTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5005, n)
}

func TestClient_CheckUnique(t *testing.T) {
	c, mock := newMockClient(t, Config{})
	mock.ExpectQuery(combinationSQL).WillReturnRows(referenceRows())

	assert.NoError(t, c.CheckUnique(context.Background()))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, "UnknownElement", KindUnknownElement.String())
	assert.Equal(t, "ExecutorError", KindExecutor.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
