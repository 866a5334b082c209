package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"plexsubs/internal/config"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("PLEXSUBS_DATABASE_DIR", "")
	return home
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	home := isolateHome(t)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(home, ".config", "plexsubs", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(home, ".local", "share", "plexsubs")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Paths.LogFile != filepath.Join(wantState, "plexsubs.log") {
		t.Fatalf("unexpected log file: %q", cfg.Paths.LogFile)
	}
	if cfg.Paths.DatabaseDir != "" {
		t.Fatalf("expected autodetect database dir, got %q", cfg.Paths.DatabaseDir)
	}
	if cfg.OverwritePolicy() != config.OverwriteSkip {
		t.Fatalf("expected skip policy by default, got %q", cfg.OverwritePolicy())
	}
	if !cfg.Logging.Enabled {
		t.Fatal("expected log file enabled by default")
	}
	if len(cfg.Extract.TextCodecs) != 3 {
		t.Fatalf("unexpected text codecs: %v", cfg.Extract.TextCodecs)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(cfg.Paths.StateDir); err != nil || !info.IsDir() {
		t.Fatalf("expected state dir to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolateHome(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "plexsubs.toml")

	type payload struct {
		Paths struct {
			DatabaseDir string `toml:"database_dir"`
			OutputDir   string `toml:"output_dir"`
		} `toml:"paths"`
		Extract struct {
			ConfirmOverwrite bool     `toml:"confirm_overwrite"`
			TextCodecs       []string `toml:"text_codecs"`
		} `toml:"extract"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.DatabaseDir = `"` + filepath.Join(tempDir, "Databases") + `"`
	custom.Paths.OutputDir = filepath.Join(tempDir, "subs")
	custom.Extract.ConfirmOverwrite = true
	custom.Extract.TextCodecs = []string{" SRT", "srt", "", "vtt"}
	custom.Logging.Format = "JSON"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.DatabaseDir != filepath.Join(tempDir, "Databases") {
		t.Fatalf("expected quotes stripped from database dir, got %q", cfg.Paths.DatabaseDir)
	}
	if cfg.OverwritePolicy() != config.OverwriteConfirm {
		t.Fatalf("expected confirm policy, got %q", cfg.OverwritePolicy())
	}
	if got := cfg.Extract.TextCodecs; len(got) != 2 || got[0] != "srt" || got[1] != "vtt" {
		t.Fatalf("unexpected normalized codecs: %v", got)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json format, got %q", cfg.Logging.Format)
	}
}

func TestLoadUsesDatabaseDirFromEnv(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	t.Setenv("PLEXSUBS_DATABASE_DIR", dir)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DatabaseDir != dir {
		t.Fatalf("expected env database dir %q, got %q", dir, cfg.Paths.DatabaseDir)
	}
}

func TestValidateRejectsMutuallyExclusiveOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{
			name: "inline with output dir",
			mutate: func(c *config.Config) {
				c.Extract.SaveInline = true
				c.Paths.OutputDir = "/tmp/subs"
			},
		},
		{
			name: "force with confirm",
			mutate: func(c *config.Config) {
				c.Extract.Force = true
				c.Extract.ConfirmOverwrite = true
			},
		},
		{
			name: "unknown log format",
			mutate: func(c *config.Config) {
				c.Logging.Format = "xml"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, config.ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestOverwritePolicy(t *testing.T) {
	cfg := config.Default()
	cfg.Extract.Force = true
	if cfg.OverwritePolicy() != config.OverwriteForce {
		t.Fatalf("expected force policy, got %q", cfg.OverwritePolicy())
	}
}

func TestTrimQuotes(t *testing.T) {
	cases := map[string]string{
		`"/a/b"`:   "/a/b",
		`'/a/b'`:   "/a/b",
		` "/a b" `: "/a b",
		`/a/b`:     "/a/b",
		`"`:        `"`,
	}
	for in, want := range cases {
		if got := config.TrimQuotes(in); got != want {
			t.Fatalf("TrimQuotes(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("expected sample config to load, exists=%v err=%v", exists, err)
	}
}
