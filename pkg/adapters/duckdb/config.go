package duckdb

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Params holds DuckDB-specific configuration.
// Parsed from adapter.Config.Params using mapstructure.
type Params struct {
	// Extensions to install and load (e.g., "ducklake", "httpfs")
	Extensions []string `mapstructure:"extensions"`

	// Secrets for cloud storage authentication
	Secrets []SecretConfig `mapstructure:"secrets"`

	// Settings to apply at session level (e.g., s3_endpoint, threads)
	Settings map[string]string `mapstructure:"settings"`

	// Attach lists catalogs to attach after connecting (e.g., a DuckLake)
	Attach []AttachConfig `mapstructure:"attach"`

	// Use switches the default catalog after attaching ("USE <name>")
	Use string `mapstructure:"use"`
}

// SecretConfig defines a DuckDB secret for cloud storage.
type SecretConfig struct {
	// Type: "s3", "gcs", "azure", "r2", "huggingface"
	Type string `mapstructure:"type"`

	// Provider: "config", "credential_chain", "service_account", etc.
	Provider string `mapstructure:"provider"`

	// Region for S3 buckets
	Region string `mapstructure:"region,omitempty"`

	// Scope limits the secret to specific paths (string or []string)
	Scope any `mapstructure:"scope,omitempty"`

	// KeyID for explicit credentials (prefer credential_chain)
	KeyID string `mapstructure:"key_id,omitempty"`

	// Secret for explicit credentials (prefer credential_chain)
	Secret string `mapstructure:"secret,omitempty"`

	// Endpoint for S3-compatible services (MinIO, etc.)
	Endpoint string `mapstructure:"endpoint,omitempty"`

	// URLStyle: "vhost" or "path" for S3
	URLStyle string `mapstructure:"url_style,omitempty"`

	// UseSSL: whether to use HTTPS (default true)
	UseSSL *bool `mapstructure:"use_ssl,omitempty"`
}

// AttachConfig describes one ATTACH statement.
type AttachConfig struct {
	// Path is the attach target, e.g. "ducklake:/path/to/metadata.ducklake"
	Path string `mapstructure:"path"`

	// Alias is the catalog name the database is attached as
	Alias string `mapstructure:"alias"`

	// DataPath is the DuckLake data location (e.g., "s3://bucket/prefix")
	DataPath string `mapstructure:"data_path,omitempty"`

	// ReadOnly attaches the catalog in read-only mode
	ReadOnly bool `mapstructure:"read_only,omitempty"`
}

// parseParams decodes the generic params map into Params.
func parseParams(raw map[string]any) (*Params, error) {
	params := &Params{}
	if len(raw) == 0 {
		return params, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           params,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create params decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode duckdb params: %w", err)
	}
	return params, nil
}
