package hea

import (
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/healake/pkg/adapter"
	"github.com/stretchr/testify/require"
)

const combinationSQL = "SELECT id, elem1, elem2, elem3, elem4, elem5, elem6 FROM hea_elements_6"

var errMissingTable = errors.New("Catalog Error: Table does not exist")

// newMockExecutor returns an executor backed by sqlmock with exact query
// matching. Driver errors equal to errMissingTable are tagged as missing
// tables, like the real adapters do.
func newMockExecutor(t *testing.T) (*adapter.BaseSQLAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &adapter.BaseSQLAdapter{
		DB:              db,
		IsTableNotFound: func(err error) bool { return errors.Is(err, errMissingTable) },
	}, mock
}

func combinationRows(records ...[]any) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "elem1", "elem2", "elem3", "elem4", "elem5", "elem6"})
	for _, r := range records {
		values := make([]driver.Value, len(r))
		for i, v := range r {
			values[i] = v
		}
		rows.AddRow(values...)
	}
	return rows
}

// record builds a reference row.
func record(id int, elems ...string) []any {
	row := []any{int64(id)}
	for _, e := range elems {
		if e == "" {
			row = append(row, nil)
			continue
		}
		row = append(row, e)
	}
	return row
}

// referenceRows is a small reference table: two compositions and one
// incomplete record.
func referenceRows() *sqlmock.Rows {
	return combinationRows(
		record(1, "Al", "Co", "Cr", "Cu", "Fe", "Hf"),
		record(2, "Al", "Co", "Cr", "Cu", "Fe", "Mn"),
		record(3, "Al", "Co", "Cr", "", "Fe", "Mn"),
	)
}

// cantorAlloyRows holds the equiatomic Cantor-style set Al-Cr-Cu-Fe-Mn-Ni
// stored in a non-sorted column order, next to the small reference table.
func cantorAlloyRows() *sqlmock.Rows {
	return combinationRows(
		record(1, "Al", "Co", "Cr", "Cu", "Fe", "Hf"),
		record(2, "Al", "Co", "Cr", "Cu", "Fe", "Mn"),
		record(42, "Fe", "Ni", "Mn", "Al", "Cr", "Cu"),
	)
}

// permutations returns every ordering of symbols (Heap's algorithm).
func permutations(symbols []string) [][]string {
	a := append([]string(nil), symbols...)
	var out [][]string
	var generate func(k int)
	generate = func(k int) {
		if k == 1 {
			out = append(out, append([]string(nil), a...))
			return
		}
		generate(k - 1)
		for i := 0; i < k-1; i++ {
			if k%2 == 0 {
				a[i], a[k-1] = a[k-1], a[i]
			} else {
				a[0], a[k-1] = a[k-1], a[0]
			}
			generate(k - 1)
		}
	}
	generate(len(a))
	return out
}
