package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Normalize expands paths and fills derived defaults. The CLI calls it again
// after applying flag overrides.
func (c *Config) Normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeExtract()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DatabaseDir) == "" {
		if value, ok := os.LookupEnv("PLEXSUBS_DATABASE_DIR"); ok {
			c.Paths.DatabaseDir = value
		}
	}
	if c.Paths.DatabaseDir, err = ExpandPath(c.Paths.DatabaseDir); err != nil {
		return fmt.Errorf("paths.database_dir: %w", err)
	}
	if c.Paths.OutputDir, err = ExpandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.StateDir, err = ExpandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogFile) == "" {
		c.Paths.LogFile = filepath.Join(c.Paths.StateDir, defaultLogFileName)
	}
	if c.Paths.LogFile, err = ExpandPath(c.Paths.LogFile); err != nil {
		return fmt.Errorf("paths.log_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeExtract() {
	if len(c.Extract.TextCodecs) == 0 {
		c.Extract.TextCodecs = append([]string(nil), DefaultTextCodecs...)
		return
	}
	codecs := make([]string, 0, len(c.Extract.TextCodecs))
	seen := make(map[string]struct{}, len(c.Extract.TextCodecs))
	for _, codec := range c.Extract.TextCodecs {
		normalized := strings.ToLower(strings.TrimSpace(codec))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		codecs = append(codecs, normalized)
	}
	if len(codecs) == 0 {
		codecs = append(codecs, DefaultTextCodecs...)
	}
	c.Extract.TextCodecs = codecs
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
