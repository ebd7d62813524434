package db

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ExportDailySummary writes today's summary into dir as two artifacts,
// overwriting any existing ones for the date:
//
//   - summary_<date>.txt: today's completions newest first, then the full
//     task list with current status.
//   - summary_<date>.csv: one row per task with the latest evidence seen
//     today. Rows are scanned newest first and later map writes win, so a
//     task with several evidenced completions today reports the earliest
//     one. This matches the tracker's historical export behavior.
//
// Tasks and completions are not mutated. Returns the two file paths.
func (d *DB) ExportDailySummary(dir string) (txtPath, csvPath string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("create summaries directory: %w", err)
	}

	now := d.now()
	date := now.Format("2006-01-02")
	txtPath = filepath.Join(dir, "summary_"+date+".txt")
	csvPath = filepath.Join(dir, "summary_"+date+".csv")

	tasks, err := d.ListTasks(ListOpts{})
	if err != nil {
		return "", "", err
	}
	completions, err := d.completionsForDay(now)
	if err != nil {
		return "", "", err
	}

	if err := writeTextSummary(txtPath, date, tasks, completions); err != nil {
		return "", "", err
	}
	if err := writeCSVSummary(csvPath, tasks, completions); err != nil {
		return "", "", err
	}
	return txtPath, csvPath, nil
}

// completionsForDay returns completions within the local calendar day of t,
// newest first.
func (d *DB) completionsForDay(t time.Time) ([]Completion, error) {
	// Half-open window up to the next calendar day's start, so the full
	// day is covered even on DST transition days.
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start := day.Format(timeLayout)
	end := day.AddDate(0, 0, 1).Format(timeLayout)

	rows, err := d.Query(`
		SELECT id, task_id, completed_at, evidence
		FROM completions WHERE completed_at >= ? AND completed_at < ?
		ORDER BY completed_at DESC, id DESC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("today's completions: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return collectCompletions(rows)
}

func writeTextSummary(path, date string, tasks []Task, completions []Completion) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily summary (%s)\n", date)
	b.WriteString("Completed today:\n")
	for _, c := range completions {
		fmt.Fprintf(&b, "- #%d at %s\n", c.TaskID, c.CompletedAt.Format(timeLayout))
		if c.Evidence != "" {
			fmt.Fprintf(&b, "  evidence: %s\n", c.Evidence)
		}
	}
	b.WriteString("\nAll tasks:\n")
	for _, t := range tasks {
		fmt.Fprintf(&b, "- #%d [%s] %s | %s | %s\n", t.ID, t.Status, t.Title, t.Category, t.Priority)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write text summary: %w", err)
	}
	return nil
}

func writeCSVSummary(path string, tasks []Task, completions []Completion) error {
	// Latest evidence per task for today. The completions slice is newest
	// first and later writes overwrite, so the earliest non-empty evidence
	// of the day ends up in the map.
	latestEvidence := make(map[int64]string)
	for _, c := range completions {
		if c.Evidence != "" {
			latestEvidence[c.TaskID] = c.Evidence
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv summary: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"task_id", "status", "title", "category", "priority", "created_at", "due_date", "latest_evidence"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range tasks {
		record := []string{
			strconv.FormatInt(t.ID, 10),
			t.Status,
			t.Title,
			t.Category,
			t.Priority,
			t.CreatedAt.Format(timeLayout),
			t.DueDate,
			latestEvidence[t.ID],
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv summary: %w", err)
	}
	return nil
}
