package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"plexsubs/internal/config"
	"plexsubs/internal/fileutil"
	"plexsubs/internal/plexdb"
)

func newLocateCommand(ctx *commandContext) *cobra.Command {
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Show which Plex database folder would be used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			dir, source := strings.TrimSpace(dirFlag), "flag"
			if dir == "" {
				dir, source = cfg.Paths.DatabaseDir, "config"
			}
			if dir == "" {
				dir, source = plexdb.DefaultDir(), "autodetect"
			}
			dir, err = config.ExpandPath(dir)
			if err != nil {
				return fmt.Errorf("resolve database folder: %w", err)
			}
			if dir == "" {
				return fmt.Errorf("%w: no default database folder on this platform; pass --database-folder", plexdb.ErrDatabaseOpen)
			}

			rows := make([][]string, 0, 2)
			for _, name := range []string{plexdb.LibraryFileName, plexdb.BlobsFileName} {
				rows = append(rows, []string{name, yesNo(fileutil.IsFile(filepath.Join(dir, name)))})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database folder: %s (%s)\n", dir, source)
			fmt.Fprintln(out, renderTable([]string{"Database", "Present"}, rows, nil))

			if _, err := plexdb.Locate(dir); err != nil {
				return err
			}
			fmt.Fprintln(out, "Both databases found")
			return nil
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "database-folder", "d", "", "Folder to check instead of the configured or default one")
	return cmd
}
