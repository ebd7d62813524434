package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDoneCmd creates the done command
func newDoneCmd() *cobra.Command {
	var evidence string

	cmd := &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"complete"},
		Short:   "Record a completion for a task",
		Long: `Record a completion for a task and mark it done.

Example:
  todotrack done 3
  todotrack done 3 --evidence "merged PR #42"`,
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

			completionID, err := store.RecordCompletion(id, evidence)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Completed task #%d (completion #%d)\n", id, completionID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&evidence, "evidence", "e", "", "note recording how the task was completed")
	return cmd
}
