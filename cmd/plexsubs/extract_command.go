package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"plexsubs/internal/config"
	"plexsubs/internal/extraction"
	"plexsubs/internal/logging"
	"plexsubs/internal/prompt"
)

type extractFlags struct {
	saveInline  bool
	outputDir   string
	logFile     string
	noLog       bool
	force       bool
	confirm     bool
	databaseDir string
	verbose     bool
}

func (f *extractFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVar(&f.saveInline, "save-inline", false, "Save subtitles next to their video files")
	flags.StringVarP(&f.outputDir, "output-dir", "o", "", "Directory to save all subtitles in")
	flags.StringVarP(&f.logFile, "log-file", "l", "", "Write the run log to this file")
	flags.BoolVar(&f.noLog, "no-log", false, "Do not write a log file")
	flags.BoolVarP(&f.force, "force", "f", false, "Overwrite existing subtitle files")
	flags.BoolVarP(&f.confirm, "confirm-override", "c", false, "Ask before overwriting each existing subtitle file")
	flags.StringVarP(&f.databaseDir, "database-folder", "d", "", "Folder containing the Plex databases")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")
}

// apply layers explicitly set flags over cfg. Setting one side of a mutually
// exclusive pair clears a value the other side got from the config file.
func (f *extractFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed

	if changed("save-inline") {
		cfg.Extract.SaveInline = f.saveInline
		if f.saveInline && !changed("output-dir") {
			cfg.Paths.OutputDir = ""
		}
	}
	if changed("output-dir") {
		cfg.Paths.OutputDir = f.outputDir
		if !changed("save-inline") {
			cfg.Extract.SaveInline = false
		}
	}
	if changed("force") {
		cfg.Extract.Force = f.force
		if f.force && !changed("confirm-override") {
			cfg.Extract.ConfirmOverwrite = false
		}
	}
	if changed("confirm-override") {
		cfg.Extract.ConfirmOverwrite = f.confirm
		if f.confirm && !changed("force") {
			cfg.Extract.Force = false
		}
	}
	if changed("database-folder") {
		cfg.Paths.DatabaseDir = f.databaseDir
	}
	if changed("log-file") {
		cfg.Paths.LogFile = f.logFile
		cfg.Logging.Enabled = true
	}
	if f.noLog {
		cfg.Logging.Enabled = false
	}
	if f.verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Normalize(); err != nil {
		return err
	}
	return cfg.Validate()
}

func runExtract(cmd *cobra.Command, ctx *commandContext, flags *extractFlags) error {
	base, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	cfg := *base
	if err := flags.apply(cmd, &cfg); err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.Info("plexsubs started", logging.String("args", strings.Join(os.Args[1:], " ")))
	defer logger.Info("Process exited.")

	terminal := newPrompter(cmd)
	if !terminal.Interactive() {
		logger.Debug("input is not a terminal; paths must come from flags or config")
	}

	runner := extraction.New(&cfg,
		extraction.WithLogger(logger),
		extraction.WithPrompter(terminal),
	)
	stats, err := runner.Run(cmd.Context())
	if err != nil {
		logging.ErrorWithContext(logger, "extraction failed", "run_failed", logging.Error(err))
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(stats))
	return nil
}

// newPrompter uses the real terminal unless the command input was redirected
// programmatically.
func newPrompter(cmd *cobra.Command) *prompt.Terminal {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && f == os.Stdin {
		return prompt.NewTerminal()
	}
	return prompt.NewTerminalWith(in, cmd.OutOrStdout(), true)
}
