package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/healake/pkg/adapter"
	"github.com/leapstack-labs/healake/pkg/hea"
)

// ValidateTarget checks the target against the adapter registry.
func ValidateTarget(t *TargetConfig) error {
	if t == nil || t.Type == "" {
		return fmt.Errorf("target type is required")
	}
	if !adapter.IsRegistered(t.Type) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := ValidateTarget(c.Target); err != nil {
		return fmt.Errorf("invalid target configuration: %w", err)
	}
	if err := c.Lake.Schema().Validate(); err != nil {
		return fmt.Errorf("invalid lake configuration: %w", err)
	}
	if n := len(hea.NewElementSet(c.Lake.Elements...)); n < hea.CompositionSize {
		return fmt.Errorf("invalid lake configuration: %d element(s) configured, need at least %d", n, hea.CompositionSize)
	}
	if c.Lake.MaxLimit <= 0 {
		return fmt.Errorf("invalid lake configuration: max_limit must be positive")
	}
	if c.Lake.DefaultLimit <= 0 || c.Lake.DefaultLimit > c.Lake.MaxLimit {
		return fmt.Errorf("invalid lake configuration: default_limit must be between 1 and max_limit (%d)", c.Lake.MaxLimit)
	}
	switch strings.ToLower(c.OutputFormat) {
	case "auto", "table", "text", "markdown", "md", "json", "csv":
	default:
		return fmt.Errorf("unknown output format %q (auto|table|text|markdown|md|json|csv)", c.OutputFormat)
	}
	return nil
}
