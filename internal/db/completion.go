package db

import (
	"database/sql"
	"fmt"
	"time"

	trackerrors "github.com/rmathes/todotrack/internal/errors"
)

// Completion represents one timestamped record that a task was performed.
type Completion struct {
	ID          int64     `json:"id"`
	TaskID      int64     `json:"task_id"`
	CompletedAt time.Time `json:"completed_at"`
	Evidence    string    `json:"evidence,omitempty"`
}

// RecordCompletion appends a completion for the task and flips the task's
// status to done. Evidence is stored verbatim and may be empty.
//
// Unlike updates and deletes, completing a task that doesn't exist is an
// error: the foreign key would otherwise leave an orphan ledger entry.
func (d *DB) RecordCompletion(taskID int64, evidence string) (int64, error) {
	t, err := d.GetTask(taskID)
	if err != nil {
		return 0, err
	}
	if t == nil {
		return 0, trackerrors.ErrTaskNotFound(taskID)
	}

	now := d.now().Format(timeLayout)
	res, err := d.Exec(`
		INSERT INTO completions (task_id, completed_at, evidence)
		VALUES (?, ?, ?)
	`, taskID, now, nullable(evidence))
	if err != nil {
		return 0, fmt.Errorf("record completion: %w", err)
	}
	if _, err := d.Exec("UPDATE tasks SET status = 'done' WHERE id = ?", taskID); err != nil {
		return 0, fmt.Errorf("mark task done: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("completion id: %w", err)
	}
	return id, nil
}

// QuickComplete creates a temporary task and immediately records a
// completion for it, returning both ids. The two steps commit separately;
// a crash in between leaves an open temp task with no completion, which is
// an accepted gap.
func (d *DB) QuickComplete(title, evidence string) (taskID, completionID int64, err error) {
	taskID, err = d.AddTask(NewTask{
		Title:    title,
		Category: TempCategory,
		Priority: PriorityMedium,
		IsTemp:   true,
	})
	if err != nil {
		return 0, 0, err
	}
	completionID, err = d.RecordCompletion(taskID, evidence)
	if err != nil {
		return 0, 0, err
	}
	return taskID, completionID, nil
}

// UndoLastCompletion deletes the task's most recent completion by
// completed_at and returns its id. Whether or not a completion existed,
// the task's status is forced back to open; with no completions the
// returned ok is false.
func (d *DB) UndoLastCompletion(taskID int64) (deletedID int64, ok bool, err error) {
	row := d.QueryRow(`
		SELECT id FROM completions WHERE task_id = ? ORDER BY completed_at DESC LIMIT 1
	`, taskID)

	err = row.Scan(&deletedID)
	switch {
	case err == sql.ErrNoRows:
		deletedID, ok = 0, false
	case err != nil:
		return 0, false, fmt.Errorf("find last completion: %w", err)
	default:
		if _, err := d.Exec("DELETE FROM completions WHERE id = ?", deletedID); err != nil {
			return 0, false, fmt.Errorf("delete completion %d: %w", deletedID, err)
		}
		ok = true
	}

	if _, err := d.Exec("UPDATE tasks SET status = 'open' WHERE id = ?", taskID); err != nil {
		return 0, false, fmt.Errorf("reopen task %d: %w", taskID, err)
	}
	return deletedID, ok, nil
}

// CompletionsForTask returns all completions for a task, newest first.
func (d *DB) CompletionsForTask(taskID int64) ([]Completion, error) {
	rows, err := d.Query(`
		SELECT id, task_id, completed_at, evidence
		FROM completions WHERE task_id = ? ORDER BY completed_at DESC, id DESC
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return collectCompletions(rows)
}

func collectCompletions(rows *sql.Rows) ([]Completion, error) {
	var out []Completion
	for rows.Next() {
		var c Completion
		var completedAt string
		var evidence sql.NullString
		if err := rows.Scan(&c.ID, &c.TaskID, &completedAt, &evidence); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		c.Evidence = evidence.String
		if ts, err := time.ParseInLocation(timeLayout, completedAt, time.Local); err == nil {
			c.CompletedAt = ts
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completions: %w", err)
	}
	return out, nil
}
