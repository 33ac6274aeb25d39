// Package config loads healake configuration.
//
// Values are layered, lowest precedence first: built-in defaults, the
// healake.yaml file, HEALAKE_ environment variables, then explicitly set
// command-line flags.
package config

import (
	"log/slog"

	"github.com/leapstack-labs/healake/pkg/core"
	"github.com/leapstack-labs/healake/pkg/hea"
)

// TargetConfig is an alias for the shared target configuration.
type TargetConfig = core.TargetConfig

// LakeConfig describes the layout of the descriptor lake.
type LakeConfig struct {
	Elements             []string `koanf:"elements"`
	CombinationTable     string   `koanf:"combination_table"`
	DescriptorPrefix     string   `koanf:"descriptor_prefix"`
	ConcentrationTable   string   `koanf:"concentration_table"`
	DescriptorNamesTable string   `koanf:"descriptor_names_table"`
	DefaultColumns       []string `koanf:"default_columns"`
	AllowedColumns       []string `koanf:"allowed_columns"`
	DefaultLimit         int      `koanf:"default_limit"`
	MaxLimit             int      `koanf:"max_limit"`
	// Index resolves compositions from an in-memory index built on first use.
	Index bool `koanf:"index"`
}

// Schema returns the lake table names.
func (l LakeConfig) Schema() hea.Schema {
	return hea.Schema{
		CombinationTable:     l.CombinationTable,
		DescriptorPrefix:     l.DescriptorPrefix,
		ConcentrationTable:   l.ConcentrationTable,
		DescriptorNamesTable: l.DescriptorNamesTable,
	}
}

// Config holds all configuration options.
type Config struct {
	Verbose      bool                 `koanf:"verbose"`
	LogLevel     string               `koanf:"log_level"`
	OutputFormat string               `koanf:"output"`
	Environment  string               `koanf:"environment"`
	Target       *TargetConfig        `koanf:"target"`
	Lake         LakeConfig           `koanf:"lake"`
	Environments map[string]EnvConfig `koanf:"environments"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// EnvConfig holds environment-specific overrides.
type EnvConfig struct {
	Target *TargetConfig `koanf:"target"`
}

// HeaConfig returns the client configuration for the lake.
func (c *Config) HeaConfig(logger *slog.Logger) hea.Config {
	return hea.Config{
		Schema:         c.Lake.Schema(),
		Elements:       c.Lake.Elements,
		DefaultColumns: c.Lake.DefaultColumns,
		AllowedColumns: c.Lake.AllowedColumns,
		DefaultLimit:   c.Lake.DefaultLimit,
		MaxLimit:       c.Lake.MaxLimit,
		UseIndex:       c.Lake.Index,
		Logger:         logger,
	}
}
