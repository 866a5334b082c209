package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags extractFlags

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "plexsubs",
		Short: "Extract embedded subtitles from a Plex Media Server database",
		Long: "plexsubs reads the subtitle blobs Plex stores in its databases and writes\n" +
			"each one to a subtitle file named after its video, language, and codec.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, ctx, &flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Configuration file path")
	flags.register(rootCmd)

	rootCmd.AddCommand(newLocateCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
