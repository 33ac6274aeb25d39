package hea

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// IndexResolver serves lookups from a map of composition key to record,
// built from one scan of the reference table on first use. A failed build
// is retried on the next call; a successful one is never refreshed.
type IndexResolver struct {
	exec     Executor
	schema   Schema
	elements ElementSet
	logger   *slog.Logger

	mu    sync.Mutex
	index map[string]Composition
}

// NewIndexResolver creates an IndexResolver. A nil logger discards output.
func NewIndexResolver(exec Executor, schema Schema, elements ElementSet, logger *slog.Logger) *IndexResolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &IndexResolver{exec: exec, schema: schema, elements: elements, logger: logger}
}

// Build loads the index if it has not been loaded yet. It fails with a
// *DuplicateCompositionError when the reference table maps one element set
// to several ids.
func (r *IndexResolver) Build(ctx context.Context) error {
	_, err := r.load(ctx)
	return err
}

// Len returns the number of indexed compositions (0 before Build).
func (r *IndexResolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.index)
}

func (r *IndexResolver) load(ctx context.Context) (map[string]Composition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index != nil {
		return r.index, nil
	}

	records, err := fetchCombinations(ctx, r.exec, r.schema)
	if err != nil {
		return nil, err
	}
	if dups := groupDuplicates(records); len(dups) > 0 {
		return nil, &DuplicateCompositionError{Duplicates: dups}
	}

	index := make(map[string]Composition, len(records))
	skipped := 0
	for _, rec := range records {
		if !rec.complete {
			skipped++
			continue
		}
		index[rec.key] = rec.composition()
	}

	r.logger.Debug("built composition index", slog.Int("compositions", len(index)), slog.Int("skipped", skipped))
	r.index = index
	return index, nil
}

// Resolve validates symbols, then looks them up in the index. Invalid input
// fails without touching the executor.
func (r *IndexResolver) Resolve(ctx context.Context, symbols []string) (Composition, error) {
	set, err := normalize(symbols, r.elements)
	if err != nil {
		return Composition{}, err
	}

	index, err := r.load(ctx)
	if err != nil {
		return Composition{}, err
	}

	comp, ok := index[compositionKey(set)]
	if !ok {
		return Composition{}, &CompositionNotFoundError{Symbols: set}
	}
	// The index is shared; callers get their own copy of the elements.
	return Composition{ID: comp.ID, Elements: slices.Clone(comp.Elements)}, nil
}
