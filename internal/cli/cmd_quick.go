package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newQuickCmd creates the quick command
func newQuickCmd() *cobra.Command {
	var evidence string

	cmd := &cobra.Command{
		Use:   "quick <title>",
		Short: "Record something already finished",
		Long: `Create a task in the temp category and immediately complete it.
Use this to log work that was never tracked as a task.

Example:
  todotrack quick "cleaned the inbox"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			taskID, completionID, err := store.QuickComplete(args[0], evidence)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged task #%d as done (completion #%d)\n", taskID, completionID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&evidence, "evidence", "e", "", "note recording how it was done")
	return cmd
}
