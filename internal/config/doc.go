// Package config loads, normalizes, and validates plexsubs configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PLEXSUBS_DATABASE_DIR. Command-line flags are layered on top by the CLI
// after Load returns, so Validate must be called again once overrides apply.
//
// Always obtain settings through this package so the extraction pipeline
// receives sanitized paths and clear validation errors before it touches a
// database.
package config
