package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"plexsubs/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				_, err := os.Stat(target)
				if err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				}
				if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set paths.database_dir if your Plex databases are not in the default location.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var explicit string
			if flag := cmd.Flag("config"); flag != nil {
				explicit = strings.TrimSpace(flag.Value.String())
			}
			cfg, path, exists, err := config.Load(explicit)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			rows := [][]string{
				{"Database folder", valueOrDefault(cfg.Paths.DatabaseDir, "autodetect")},
				{"Output", outputDescription(cfg)},
				{"Overwrite", string(cfg.OverwritePolicy())},
				{"Text codecs", strings.Join(cfg.Extract.TextCodecs, ", ")},
				{"State dir", cfg.Paths.StateDir},
				{"Log file", logFileDescription(cfg)},
			}
			fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, rows, nil))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func outputDescription(cfg *config.Config) string {
	if cfg.Extract.SaveInline {
		return "inline (beside each video)"
	}
	return valueOrDefault(cfg.Paths.OutputDir, "ask at run time")
}

func logFileDescription(cfg *config.Config) string {
	if !cfg.Logging.Enabled {
		return "disabled"
	}
	return cfg.Paths.LogFile
}
