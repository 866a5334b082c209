// Package logging assembles structured slog loggers and formatting helpers used
// across plexsubs.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing (stderr plus an optional append-only log file), and exposes
// context-aware helpers so every line of an extraction run carries the same
// run identifier. The package also provides a no-op logger for tests and wiring
// code that cannot fail.
package logging
