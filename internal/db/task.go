package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	trackerrors "github.com/rmathes/todotrack/internal/errors"
)

// Task statuses.
const (
	StatusOpen = "open"
	StatusDone = "done"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// TempCategory is the category assigned to tasks created via quick-complete.
const TempCategory = "temp"

// ValidPriority reports whether p is in the closed priority set.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a task stored in the database.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	DueDate     string    `json:"due_date,omitempty"` // empty = no due date
	Status      string    `json:"status"`
	IsTemp      bool      `json:"is_temp"`
}

// NewTask holds the fields for creating a task.
type NewTask struct {
	Title       string
	Description string
	Category    string
	Priority    string // empty defaults to medium
	DueDate     string // empty = no due date
	IsTemp      bool
}

// ListOpts provides filtering options for ListTasks.
type ListOpts struct {
	Search   string // substring match on title or description
	Category string // exact match
}

// ListTasks returns tasks matching the given options.
//
// Ordering puts the most urgent open work first: open before done, then
// priority high > medium > low (anything else last), then tasks with a due
// date before tasks without (earliest due first), then newest created.
func (d *DB) ListTasks(opts ListOpts) ([]Task, error) {
	var conds []string
	var args []any
	if opts.Search != "" {
		conds = append(conds, "(title LIKE ? OR description LIKE ?)")
		like := "%" + opts.Search + "%"
		args = append(args, like, like)
	}
	if opts.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, opts.Category)
	}

	query := "SELECT id, title, description, category, priority, created_at, due_date, status, is_temp FROM tasks"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += `
		ORDER BY
			status = 'open' DESC,
			CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END DESC,
			CASE WHEN due_date IS NULL OR due_date = '' THEN 1 ELSE 0 END,
			due_date ASC,
			created_at DESC`

	rows, err := d.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// AddTask inserts a new task and returns its id.
// The task starts open with created_at set to the current time.
func (d *DB) AddTask(nt NewTask) (int64, error) {
	priority := nt.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !ValidPriority(priority) {
		return 0, trackerrors.ErrInvalidPriority(priority)
	}

	now := d.now().Format(timeLayout)
	res, err := d.Exec(`
		INSERT INTO tasks (title, description, category, priority, created_at, due_date, status, is_temp)
		VALUES (?, ?, ?, ?, ?, ?, 'open', ?)
	`, nt.Title, nt.Description, nt.Category, priority, now, nullable(nt.DueDate), boolToInt(nt.IsTemp))
	if err != nil {
		return 0, fmt.Errorf("add task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add task id: %w", err)
	}
	return id, nil
}

// GetTask retrieves a task by id. Returns nil if no such task exists.
func (d *DB) GetTask(id int64) (*Task, error) {
	row := d.QueryRow(`
		SELECT id, title, description, category, priority, created_at, due_date, status, is_temp
		FROM tasks WHERE id = ?
	`, id)

	t, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return &t, nil
}

// TaskUpdate holds a partial task update. Nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *string
	DueDate     *string
}

// UpdateTask applies the supplied fields to a task. A nil field means
// "leave unchanged". Updating a nonexistent id silently affects zero rows.
func (d *DB) UpdateTask(id int64, u TaskUpdate) error {
	var fields []string
	var args []any
	if u.Title != nil {
		fields = append(fields, "title = ?")
		args = append(args, *u.Title)
	}
	if u.Description != nil {
		fields = append(fields, "description = ?")
		args = append(args, *u.Description)
	}
	if u.Category != nil {
		fields = append(fields, "category = ?")
		args = append(args, *u.Category)
	}
	if u.Priority != nil {
		if !ValidPriority(*u.Priority) {
			return trackerrors.ErrInvalidPriority(*u.Priority)
		}
		fields = append(fields, "priority = ?")
		args = append(args, *u.Priority)
	}
	if u.DueDate != nil {
		fields = append(fields, "due_date = ?")
		args = append(args, nullable(*u.DueDate))
	}
	if len(fields) == 0 {
		return nil
	}

	args = append(args, id)
	if _, err := d.Exec("UPDATE tasks SET "+strings.Join(fields, ", ")+" WHERE id = ?", args...); err != nil {
		return fmt.Errorf("update task %d: %w", id, err)
	}
	return nil
}

// DeleteTask removes a task and, via cascade, all its completions.
// Deleting a nonexistent id silently affects zero rows.
func (d *DB) DeleteTask(id int64) error {
	if _, err := d.Exec("DELETE FROM tasks WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var t Task
	var description, category, priority, dueDate sql.NullString
	var createdAt string
	var isTemp int
	if err := s.Scan(&t.ID, &t.Title, &description, &category, &priority, &createdAt, &dueDate, &t.Status, &isTemp); err != nil {
		return Task{}, err
	}
	t.Description = description.String
	t.Category = category.String
	t.Priority = priority.String
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	t.DueDate = dueDate.String
	t.IsTemp = isTemp != 0
	if ts, err := time.ParseInLocation(timeLayout, createdAt, time.Local); err == nil {
		t.CreatedAt = ts
	}
	return t, nil
}

// nullable maps the empty string to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
