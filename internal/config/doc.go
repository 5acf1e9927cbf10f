// Package config provides configuration management for the FTS CSV exporter.
// It loads configuration from environment variables and an optional YAML file,
// validates it, and owns the CSV output path layout.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. An optional YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern FTS_* for namespacing:
//
//	FTS_API_BASE_URL=http://fts.unocha.org/api/v1/
//	FTS_API_TIMEOUT=30s
//	FTS_EXPORT_OUTPUT_DIR=/tmp
//	FTS_EXPORT_COUNTRIES=COL,SSD,YEM,PAK
//	FTS_LOGGING_LEVEL=info
//
// # Path Management
//
// The Paths type owns the output tree layout:
//
//	<output_dir>/fts/global/fts_<type>.csv
//	<output_dir>/fts/per_country/<country>/fts_<country>_<type>.csv
package config
