package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rmathes/todotrack/internal/tui"
)

// newUICmd creates the ui command
func newUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive terminal UI",
		Long: `Open the interactive terminal UI.

The UI shows the task list with the 7-day streak and supports adding,
editing, completing, and searching tasks without leaving the terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("ui requires an interactive terminal")
			}

			store, cfg, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			return tui.New(store, cfg.SummariesDir).Run()
		},
	}

	return cmd
}
