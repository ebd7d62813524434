package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// newStreakCmd creates the streak command
func newStreakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show the last 7 days of completions",
		Long:  `Show which of the last 7 days had at least one completion, oldest first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			streak, err := store.Last7DayStreak()
			if err != nil {
				return err
			}

			today := time.Now()
			cells := make([]string, 0, len(streak))
			hits := 0
			for i, hit := range streak {
				day := today.AddDate(0, 0, i-len(streak)+1)
				mark := "□"
				if hit {
					mark = "■"
					hits++
				}
				cells = append(cells, fmt.Sprintf("%s %s", day.Format("Mon"), mark))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, strings.Join(cells, "  "))
			fmt.Fprintf(out, "%d of %d days with a completion\n", hits, len(streak))
			return nil
		},
	}

	return cmd
}
