package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration marks fatal configuration problems detected before any
// database access.
var ErrConfiguration = errors.New("configuration error")

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.ValidateExtraction(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

// ValidateExtraction checks the mutually exclusive output and overwrite options.
func (c *Config) ValidateExtraction() error {
	if c.Extract.SaveInline && strings.TrimSpace(c.Paths.OutputDir) != "" {
		return fmt.Errorf("%w: extract.save_inline and paths.output_dir cannot both be set", ErrConfiguration)
	}
	if c.Extract.Force && c.Extract.ConfirmOverwrite {
		return fmt.Errorf("%w: extract.force and extract.confirm_overwrite cannot both be set", ErrConfiguration)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q", ErrConfiguration, c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level must be debug, info, warn, or error, got %q", ErrConfiguration, c.Logging.Level)
	}
	return nil
}
