package testsupport

import (
	"path/filepath"
	"testing"

	"plexsubs/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// File logging is disabled and the output directory points at a path under
// the temp root that does not exist yet.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogFile = filepath.Join(base, "state", "plexsubs.log")
	cfgVal.Paths.OutputDir = filepath.Join(base, "subs")
	cfgVal.Logging.Enabled = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDatabaseDir points the config at a fixture database folder.
func WithDatabaseDir(dir string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.DatabaseDir = dir
	}
}

// WithOutputDir overrides the flat output directory.
func WithOutputDir(dir string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.OutputDir = dir
	}
}

// WithInline switches to inline output and clears the output directory.
func WithInline() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Extract.SaveInline = true
		b.cfg.Paths.OutputDir = ""
	}
}

// WithOverwrite sets the force and confirm flags.
func WithOverwrite(force, confirm bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Extract.Force = force
		b.cfg.Extract.ConfirmOverwrite = confirm
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
