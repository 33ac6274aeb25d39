package hea

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// TableID identifies a composition's descriptor table. The zero value is
// not a valid id; values are only produced by Resolve and Lookup.
type TableID struct {
	n int
}

// Int returns the numeric id.
func (id TableID) Int() int { return id.n }

// IsZero reports whether id was never resolved.
func (id TableID) IsZero() bool { return id.n == 0 }

func (id TableID) String() string { return strconv.Itoa(id.n) }

// Composition is a resolved reference record.
type Composition struct {
	ID TableID
	// Elements are in reference-table column order (elem1..elem6), which is
	// the order of the concentration columns con1..con6.
	Elements []string
}

// Key returns the order-independent key of the composition.
func (c Composition) Key() string {
	return compositionKey(canonicalSet(c.Elements))
}

// Resolver maps a set of element symbols to its composition.
type Resolver interface {
	Resolve(ctx context.Context, symbols []string) (Composition, error)
}

// combination is one row of the reference table.
type combination struct {
	id       int
	elements []string
	key      string
	complete bool // six distinct, non-null symbols
}

func (c combination) composition() Composition {
	return Composition{ID: TableID{n: c.id}, Elements: slices.Clone(c.elements)}
}

func combinationQuery(schema Schema) string {
	return fmt.Sprintf("SELECT %s, %s FROM %s",
		columnID, strings.Join(elementColumns(), ", "), schema.CombinationTable)
}

func scanCombinations(rows interface {
	Next() bool
	Scan(dest ...any) error
}) ([]combination, error) {
	var out []combination
	for rows.Next() {
		var id int64
		var elems [CompositionSize]sql.NullString
		dest := []any{&id}
		for i := range elems {
			dest = append(dest, &elems[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan combination: %w", err)
		}

		c := combination{id: int(id), complete: true}
		for _, e := range elems {
			if !e.Valid || strings.TrimSpace(e.String) == "" {
				c.complete = false
				c.elements = append(c.elements, "")
				continue
			}
			c.elements = append(c.elements, Canonicalize(e.String))
		}
		set := canonicalSet(c.elements)
		if len(set) != CompositionSize {
			c.complete = false
		}
		c.key = compositionKey(set)
		out = append(out, c)
	}
	return out, nil
}

// fetchCombinations reads the whole reference table.
func fetchCombinations(ctx context.Context, exec Executor, schema Schema) ([]combination, error) {
	rows, err := exec.Query(ctx, combinationQuery(schema))
	if err != nil {
		return nil, &ExecutorError{Op: "read " + schema.CombinationTable, Err: err}
	}
	defer func() { _ = rows.Close() }()

	out, err := scanCombinations(rows)
	if err != nil {
		return nil, &ExecutorError{Op: "read " + schema.CombinationTable, Err: err}
	}
	if err := rows.Err(); err != nil {
		return nil, &ExecutorError{Op: "read " + schema.CombinationTable, Err: err}
	}
	return out, nil
}

// ScanResolver resolves by scanning the full reference table on every call.
type ScanResolver struct {
	exec     Executor
	schema   Schema
	elements ElementSet
	logger   *slog.Logger
}

// NewScanResolver creates a ScanResolver. A nil logger discards output.
func NewScanResolver(exec Executor, schema Schema, elements ElementSet, logger *slog.Logger) *ScanResolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ScanResolver{exec: exec, schema: schema, elements: elements, logger: logger}
}

// Resolve validates symbols and returns the first reference record with the
// same element set.
func (r *ScanResolver) Resolve(ctx context.Context, symbols []string) (Composition, error) {
	set, err := normalize(symbols, r.elements)
	if err != nil {
		return Composition{}, err
	}
	key := compositionKey(set)

	records, err := fetchCombinations(ctx, r.exec, r.schema)
	if err != nil {
		return Composition{}, err
	}

	var match *combination
	for i := range records {
		if !records[i].complete || records[i].key != key {
			continue
		}
		if match != nil {
			r.logger.Warn("composition registered more than once; using first match",
				slog.String("composition", key),
				slog.Int("used_id", match.id),
				slog.Int("ignored_id", records[i].id))
			continue
		}
		match = &records[i]
	}

	if match == nil {
		return Composition{}, &CompositionNotFoundError{Symbols: set}
	}
	r.logger.Debug("resolved composition", slog.String("composition", key), slog.Int("table_id", match.id))
	return match.composition(), nil
}

// Lookup validates a raw table id against the reference table.
func Lookup(ctx context.Context, exec Executor, schema Schema, id int) (Composition, error) {
	if id <= 0 {
		return Composition{}, &TableNotFoundError{TableID: id}
	}

	query := combinationQuery(schema) + " WHERE " + columnID + " = " + placeholderFor(exec)(1)
	rows, err := exec.Query(ctx, query, id)
	if err != nil {
		return Composition{}, &ExecutorError{Op: "look up table id " + strconv.Itoa(id), Err: err}
	}
	defer func() { _ = rows.Close() }()

	records, err := scanCombinations(rows)
	if err == nil {
		err = rows.Err()
	}
	if err != nil {
		return Composition{}, &ExecutorError{Op: "look up table id " + strconv.Itoa(id), Err: err}
	}
	if len(records) == 0 {
		return Composition{}, &TableNotFoundError{TableID: id}
	}
	return records[0].composition(), nil
}

// groupDuplicates returns every key shared by more than one complete record,
// sorted by key.
func groupDuplicates(records []combination) []Duplicate {
	ids := make(map[string][]int)
	for _, rec := range records {
		if rec.complete {
			ids[rec.key] = append(ids[rec.key], rec.id)
		}
	}

	var dups []Duplicate
	for key, list := range ids {
		if len(list) > 1 {
			sort.Ints(list)
			dups = append(dups, Duplicate{Key: key, IDs: list})
		}
	}
	sort.Slice(dups, func(i, j int) bool { return dups[i].Key < dups[j].Key })
	return dups
}

// CheckUnique scans the reference table and returns a
// *DuplicateCompositionError if any element set is registered twice.
func CheckUnique(ctx context.Context, exec Executor, schema Schema) error {
	records, err := fetchCombinations(ctx, exec, schema)
	if err != nil {
		return err
	}
	if dups := groupDuplicates(records); len(dups) > 0 {
		return &DuplicateCompositionError{Duplicates: dups}
	}
	return nil
}
