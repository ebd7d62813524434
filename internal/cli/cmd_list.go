package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmathes/todotrack/internal/db"
)

// newListCmd creates the list command
func newListCmd() *cobra.Command {
	var (
		search   string
		category string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks, open ones first, ordered by priority and due date.

Example:
  todotrack list
  todotrack list --category work
  todotrack list --search report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			tasks, err := store.ListTasks(db.ListOpts{Search: search, Category: category})
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}

			printTaskTable(cmd.OutOrStdout(), tasks)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by title or description substring")
	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by exact category")
	return cmd
}
