// Package core defines the shared contracts of healake.
//
// This package contains:
//   - The executor contract implemented by database adapters (Adapter, Rows)
//   - Connection configuration types (AdapterConfig, TargetConfig)
//   - Sentinel errors adapters use to tag driver failures
//
// pkg/core imports only the standard library. All other packages depend on
// core, not the reverse.
package core
