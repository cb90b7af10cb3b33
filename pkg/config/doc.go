// Package config provides configuration management for the inventory service.
//
// This package handles loading and validating server configuration
// from defaults, an optional YAML file and environment variables.
//
// # Configuration Sources
//
// Configuration is loaded in order, later sources winning:
//
//   - Built-in defaults
//   - Configuration file ($INVMANG_CONFIG_PATH/invmang.yml)
//   - Environment variables
//
// # Key Configuration Options
//
//   - INVMANG_BIND_ADDRESS / INVMANG_PORT: listen address
//   - INVMANG_READ_TIMEOUT / INVMANG_WRITE_TIMEOUT: HTTP timeouts in seconds
//   - INVMANG_AUDIT_ENABLED: write-path audit logging
//   - INVMANG_LOG_LEVEL: Logging verbosity
//   - DATABASE_URL: Database connection (see package db)
package config
