package adapter

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/healake/pkg/core"
)

// Factory builds an adapter bound to logger. A nil logger discards output.
type Factory func(*slog.Logger) Adapter

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
	aliases    = make(map[string]string)
)

// Register adds an adapter factory to the registry under name and any
// aliases. Names are case-insensitive. Called from adapter init() functions.
func Register(name string, factory Factory, alias ...string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	name = strings.ToLower(name)
	registry[name] = factory
	for _, a := range alias {
		aliases[strings.ToLower(a)] = name
	}
}

// Canonical maps a target type or one of its aliases to the registered
// adapter name. Unknown names come back lowercased.
func Canonical(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	registryMu.RLock()
	defer registryMu.RUnlock()
	if target, ok := aliases[name]; ok {
		return target
	}
	return name
}

// Get retrieves an adapter factory by name or alias.
func Get(name string) (Factory, bool) {
	name = Canonical(name)
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// NewAdapter creates a new adapter instance based on config type.
// The logger parameter is passed to the adapter constructor (nil uses discard logger).
func NewAdapter(cfg core.AdapterConfig, logger *slog.Logger) (Adapter, error) {
	if strings.TrimSpace(cfg.Type) == "" {
		return nil, fmt.Errorf("adapter type not specified")
	}

	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownAdapterError{
			Type:      cfg.Type,
			Available: ListAdapters(),
		}
	}
	if logger != nil {
		logger = logger.With("adapter", Canonical(cfg.Type))
	}
	return factory(logger), nil
}

// ListAdapters returns all registered adapter names (sorted). Aliases are
// not listed.
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if an adapter type or alias is registered.
func IsRegistered(name string) bool {
	_, ok := Get(name)
	return ok
}

// UnknownAdapterError is returned when an unknown adapter type is requested.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown adapter type %q\nAvailable adapters: %v\nHint: Check your target.type in healake.yaml", e.Type, e.Available)
}
