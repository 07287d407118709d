// Package config loads errenhanced configuration from TOML or YAML files
// with environment variable overrides, and exposes the typed Settings view
// consumed by the enhanced error factory.
//
// Package: config
// Title: errenhanced Configuration
// Description: Values are addressed with dot notation ("log.level"). When
//              an environment prefix is set, ERRENHANCED_LOG_LEVEL overrides
//              log.level. Settings collects every recognised key together
//              with its default and is checked with Validate before use.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-16 v0.2.0: Typed Settings for serializer, application state,
//                      analysis and metrics
//
// Example configuration (TOML):
//
//	[log]
//	level = "info"
//	format = "text"
//
//	[serializer]
//	snapshot = "cached"
//	csv_delimiter = ";"
//
//	[application_state]
//	package_managers = ["go", "npm"]
//	dependency_cache_ttl = "10m"
package config
