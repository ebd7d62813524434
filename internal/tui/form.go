package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmathes/todotrack/internal/db"
	trackerrors "github.com/rmathes/todotrack/internal/errors"
)

// Form field positions.
const (
	fieldTitle = iota
	fieldDescription
	fieldCategory
	fieldPriority
	fieldDueDate
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Description", "Category", "Priority", "Due date"}

// taskForm collects task fields for add and edit.
type taskForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newTaskForm() *taskForm {
	f := &taskForm{}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Width = 40
		f.inputs[i] = ti
	}
	f.inputs[fieldPriority].Placeholder = "low / medium / high"
	f.inputs[fieldDueDate].Placeholder = "2026-01-31 (optional)"
	f.inputs[fieldTitle].Focus()
	return f
}

// prefill loads an existing task into the form for editing.
func (f *taskForm) prefill(t db.Task) {
	f.inputs[fieldTitle].SetValue(t.Title)
	f.inputs[fieldDescription].SetValue(t.Description)
	f.inputs[fieldCategory].SetValue(t.Category)
	f.inputs[fieldPriority].SetValue(t.Priority)
	f.inputs[fieldDueDate].SetValue(t.DueDate)
}

// next moves focus to the following field, wrapping around.
func (f *taskForm) next() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % fieldCount
	f.inputs[f.focus].Focus()
}

func (f *taskForm) prev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + fieldCount - 1) % fieldCount
	f.inputs[f.focus].Focus()
}

// update forwards a message to the focused input.
func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// validate checks the form, recording a message on failure.
func (f *taskForm) validate() bool {
	if strings.TrimSpace(f.inputs[fieldTitle].Value()) == "" {
		f.err = "title is required"
		return false
	}
	if p := f.priority(); p != "" && !db.ValidPriority(p) {
		f.err = trackerrors.ErrInvalidPriority(p).Error()
		return false
	}
	f.err = ""
	return true
}

func (f *taskForm) title() string       { return strings.TrimSpace(f.inputs[fieldTitle].Value()) }
func (f *taskForm) description() string { return strings.TrimSpace(f.inputs[fieldDescription].Value()) }
func (f *taskForm) category() string    { return strings.TrimSpace(f.inputs[fieldCategory].Value()) }
func (f *taskForm) priority() string {
	return strings.ToLower(strings.TrimSpace(f.inputs[fieldPriority].Value()))
}
func (f *taskForm) dueDate() string { return strings.TrimSpace(f.inputs[fieldDueDate].Value()) }

// view renders the form with labels and the current error, if any.
func (f *taskForm) view(styles Styles) string {
	var b strings.Builder
	for i := range f.inputs {
		label := fieldLabels[i]
		if i == f.focus {
			b.WriteString(styles.Header.Render("> " + label))
		} else {
			b.WriteString(styles.Subtle.Render("  " + label))
		}
		b.WriteString("\n  " + f.inputs[i].View() + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + styles.Error.Render(f.err) + "\n")
	}
	b.WriteString("\n" + styles.Subtle.Render("tab/shift+tab: move · enter: save · esc: cancel"))
	return b.String()
}
