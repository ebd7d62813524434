package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newUndoCmd creates the undo command
func newUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <id>",
		Short: "Undo the most recent completion of a task",
		Long: `Remove the most recent completion of a task and reopen it.
Reopens the task even when it has no completions recorded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			deletedID, found, err := store.UndoLastCompletion(id)
			if err != nil {
				return err
			}

			if found {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed completion #%d; task #%d is open again\n", deletedID, id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Task #%d had no completions; marked open\n", id)
			}
			return nil
		},
	}

	return cmd
}
