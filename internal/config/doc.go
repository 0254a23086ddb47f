// Package config provides application configuration for salespulse.
//
// Configuration is layered: built-in defaults, then an optional YAML file,
// then environment variables with the SALESPULSE prefix. Each layer overrides
// the previous one. The package also centralizes filesystem path resolution
// for the raw, processed, report and log directories.
//
// Pipeline knobs (value-bucket boundaries, delivery thresholds, tier cut
// points, the revenue-inclusion flag) live in PipelineConfig and are handed
// to the core as an explicit value; the core re-validates them before any
// run starts.
package config
