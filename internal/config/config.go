package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains database, output, and state locations.
type Paths struct {
	DatabaseDir string `toml:"database_dir"`
	OutputDir   string `toml:"output_dir"`
	StateDir    string `toml:"state_dir"`
	LogFile     string `toml:"log_file"`
}

// Extract controls where subtitles are written and how conflicts are handled.
type Extract struct {
	SaveInline       bool     `toml:"save_inline"`
	Force            bool     `toml:"force"`
	ConfirmOverwrite bool     `toml:"confirm_overwrite"`
	TextCodecs       []string `toml:"text_codecs"`
}

// Logging contains configuration for log output.
type Logging struct {
	Enabled bool   `toml:"enabled"`
	Format  string `toml:"format"`
	Level   string `toml:"level"`
}

// Config encapsulates all configuration values for plexsubs.
//
// Configuration sections:
//   - Paths: Plex database folder, flat output directory, state and log files
//   - Extract: inline output and overwrite policy
//   - Logging: log file toggle, format, and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Extract Extract `toml:"extract"`
	Logging Logging `toml:"logging"`
}

// OverwritePolicy describes what happens when a derived subtitle path already exists.
type OverwritePolicy string

const (
	OverwriteSkip    OverwritePolicy = "skip"
	OverwriteForce   OverwritePolicy = "force"
	OverwriteConfirm OverwritePolicy = "confirm"
)

// OverwritePolicy collapses the force/confirm flags into a single policy. Callers
// should validate first; when both flags are set force wins here.
func (c *Config) OverwritePolicy() OverwritePolicy {
	switch {
	case c.Extract.Force:
		return OverwriteForce
	case c.Extract.ConfirmOverwrite:
		return OverwriteConfirm
	default:
		return OverwriteSkip
	}
}

// LockPath is the advisory lock guarding against concurrent runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "plexsubs.lock")
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/plexsubs/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("plexsubs.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state directory that holds the run lock and the
// default log file. The flat output directory is deliberately left alone; the
// extraction run asks before creating it.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.StateDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.StateDir, err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
// Surrounding quotes, as pasted from a file manager, are removed first.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(TrimQuotes(pathValue))
}

// TrimQuotes strips one pair of matching or mixed surrounding quotes and any
// outer whitespace from a user supplied path.
func TrimQuotes(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 && isQuote(value[0]) && isQuote(value[len(value)-1]) {
		value = value[1 : len(value)-1]
	}
	return value
}

func isQuote(b byte) bool {
	return b == '"' || b == '\''
}

func defaultStateDir() string {
	if base, ok := os.LookupEnv("XDG_STATE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "plexsubs")
	}
	return "~/.local/share/plexsubs"
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
