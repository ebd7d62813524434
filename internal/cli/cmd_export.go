package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newExportCmd creates the export command
func newExportCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export today's summary",
		Long: `Write today's summary as a text file and a CSV file.
Files are named summary_<date>.txt and summary_<date>.csv and
overwrite any earlier export for the same day.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			target := dir
			if target == "" {
				target = cfg.SummariesDir
			}

			txtPath, csvPath, err := store.ExportDailySummary(target)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s\n", txtPath)
			fmt.Fprintf(out, "Wrote %s\n", csvPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "o", "", "output directory (default from config)")
	return cmd
}
