package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmathes/todotrack/internal/db"
)

// newAddCmd creates the add command
func newAddCmd() *cobra.Command {
	var (
		description string
		category    string
		priority    string
		dueDate     string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Long: `Add a new task.

Example:
  todotrack add "Write the report"
  todotrack add "Pay rent" --category life --priority high --due 2026-09-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.AddTask(db.NewTask{
				Title:       args[0],
				Description: description,
				Category:    category,
				Priority:    priority,
				DueDate:     dueDate,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added task #%d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "task category")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "priority: low, medium, high (default medium)")
	cmd.Flags().StringVar(&dueDate, "due", "", "due date, e.g. 2026-09-01")
	return cmd
}
