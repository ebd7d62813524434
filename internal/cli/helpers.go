package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/rmathes/todotrack/internal/config"
	"github.com/rmathes/todotrack/internal/db"
)

// openStore opens the configured store, returning it with the resolved
// configuration. Callers must Close the store.
func openStore() (*db.DB, *config.Config, error) {
	cfg := loadConfig()
	store, err := db.Open(cfg.StorePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store at %s: %w", cfg.StorePath, err)
	}
	return store, cfg, nil
}

// parseTaskID parses a positional task id argument.
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

// printTaskTable renders tasks in a tab-aligned table.
func printTaskTable(out io.Writer, tasks []db.Task) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRI\tDUE\tTITLE\tCATEGORY")
	fmt.Fprintln(w, "──\t──────\t───\t───\t─────\t────────")

	for _, t := range tasks {
		due := t.DueDate
		if due == "" {
			due = "-"
		}
		category := t.Category
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, statusIcon(t.Status), t.Priority, due, truncate(t.Title, 40), category)
	}
	w.Flush()
}

func statusIcon(status string) string {
	if status == db.StatusDone {
		return "✓ done"
	}
	return "· open"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
