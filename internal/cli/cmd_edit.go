package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmathes/todotrack/internal/db"
)

// newEditCmd creates the edit command
func newEditCmd() *cobra.Command {
	var (
		title       string
		description string
		category    string
		priority    string
		dueDate     string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Edit fields of an existing task. Only the flags you pass change.

Example:
  todotrack edit 3 --priority high
  todotrack edit 3 --title "New title" --due 2026-09-15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			var update db.TaskUpdate
			if cmd.Flags().Changed("title") {
				update.Title = &title
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("category") {
				update.Category = &category
			}
			if cmd.Flags().Changed("priority") {
				update.Priority = &priority
			}
			if cmd.Flags().Changed("due") {
				update.DueDate = &dueDate
			}

			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.UpdateTask(id, update); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "new priority: low, medium, high")
	cmd.Flags().StringVar(&dueDate, "due", "", "new due date (empty clears it)")
	return cmd
}
