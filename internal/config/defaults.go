package config

import (
	"github.com/leapstack-labs/healake/pkg/adapter"
	"github.com/leapstack-labs/healake/pkg/hea"
)

// Default configuration values.
const (
	ConfigFileName    = "healake.yaml"
	ConfigFileNameAlt = "healake.yml"
	EnvPrefix         = "HEALAKE_"
	DefaultOutput     = "auto" // TTY=table, otherwise markdown
	DefaultLogLevel   = "warn"
	DefaultTargetType = "duckdb"
)

// defaults returns the lowest-precedence configuration layer.
func defaults() map[string]any {
	schema := hea.DefaultSchema()
	return map[string]any{
		"verbose":                     false,
		"log_level":                   DefaultLogLevel,
		"output":                      DefaultOutput,
		"lake.elements":               hea.DefaultElements,
		"lake.combination_table":      schema.CombinationTable,
		"lake.descriptor_prefix":      schema.DescriptorPrefix,
		"lake.concentration_table":    schema.ConcentrationTable,
		"lake.descriptor_names_table": schema.DescriptorNamesTable,
		"lake.default_columns":        hea.DefaultDescriptorColumns,
		"lake.default_limit":          hea.DefaultLimit,
		"lake.max_limit":              hea.MaxLimit,
		"lake.index":                  false,
	}
}

// DefaultSchemaForType returns the default schema for a database type.
func DefaultSchemaForType(dbType string) string {
	switch adapter.Canonical(dbType) {
	case "postgres":
		return "public"
	default:
		return "main"
	}
}

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *TargetConfig) {
	if t == nil {
		return
	}
	if t.Type == "" {
		t.Type = DefaultTargetType
	}
	t.Type = adapter.Canonical(t.Type)
	if t.Schema == "" {
		t.Schema = DefaultSchemaForType(t.Type)
	}
	if t.Type == "postgres" && t.Port == 0 {
		t.Port = 5432
	}
}
