// Package tui provides the interactive terminal UI for todotrack.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmathes/todotrack/internal/db"
)

// mode identifies which view has the keyboard.
type mode int

const (
	modeList mode = iota
	modeForm
	modePrompt
	modeConfirm
)

// promptKind identifies what the single-line prompt is collecting.
type promptKind int

const (
	promptEvidence promptKind = iota
	promptQuick
	promptSearch
)

// App is the terminal UI model.
type App struct {
	store        *db.DB
	summariesDir string

	styles Styles
	keys   keyMap
	help   help.Model
	table  table.Model

	tasks  []db.Task
	streak [7]bool
	search string

	mode       mode
	form       *taskForm
	editID     int64 // 0 = adding
	prompt     textinput.Model
	promptFor  promptKind
	confirmID  int64
	status     string
	statusIsOK bool

	width  int
	height int
}

// New creates the UI over the given store.
func New(store *db.DB, summariesDir string) *App {
	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "St", Width: 4},
		{Title: "Pri", Width: 6},
		{Title: "Due", Width: 10},
		{Title: "Title", Width: 32},
		{Title: "Category", Width: 10},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(14),
	)

	prompt := textinput.New()
	prompt.Width = 50

	a := &App{
		store:        store,
		summariesDir: summariesDir,
		styles:       DefaultStyles(),
		keys:         defaultKeyMap(),
		help:         help.New(),
		table:        tbl,
		prompt:       prompt,
	}
	a.reload()
	return a
}

// Run starts the UI and blocks until the user quits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// reload refreshes tasks and the streak from the store.
func (a *App) reload() {
	tasks, err := a.store.ListTasks(db.ListOpts{Search: a.search})
	if err != nil {
		a.fail(err)
		return
	}
	a.tasks = tasks

	streak, err := a.store.Last7DayStreak()
	if err != nil {
		a.fail(err)
		return
	}
	a.streak = streak

	rows := make([]table.Row, len(tasks))
	for i, t := range tasks {
		due := t.DueDate
		if due == "" {
			due = "-"
		}
		mark := " "
		if t.Status == db.StatusDone {
			mark = "✓"
		}
		rows[i] = table.Row{
			strconv.FormatInt(t.ID, 10),
			mark,
			t.Priority,
			due,
			t.Title,
			t.Category,
		}
	}
	a.table.SetRows(rows)
}

// selected returns the task under the cursor, or nil.
func (a *App) selected() *db.Task {
	i := a.table.Cursor()
	if i < 0 || i >= len(a.tasks) {
		return nil
	}
	return &a.tasks[i]
}

func (a *App) ok(format string, args ...any) {
	a.status = fmt.Sprintf(format, args...)
	a.statusIsOK = true
}

func (a *App) fail(err error) {
	a.status = err.Error()
	a.statusIsOK = false
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = size.Width, size.Height
		a.help.Width = size.Width
		return a, nil
	}

	switch a.mode {
	case modeForm:
		return a.updateForm(msg)
	case modePrompt:
		return a.updatePrompt(msg)
	case modeConfirm:
		return a.updateConfirm(msg)
	}
	return a.updateList(msg)
}

func (a *App) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		a.table, cmd = a.table.Update(msg)
		return a, cmd
	}

	keys := a.keys
	switch {
	case key.Matches(keyMsg, keys.Quit):
		return a, tea.Quit

	case key.Matches(keyMsg, keys.Add):
		a.form = newTaskForm()
		a.editID = 0
		a.mode = modeForm
		return a, textinput.Blink

	case key.Matches(keyMsg, keys.Edit):
		t := a.selected()
		if t == nil {
			return a, nil
		}
		a.form = newTaskForm()
		a.form.prefill(*t)
		a.editID = t.ID
		a.mode = modeForm
		return a, textinput.Blink

	case key.Matches(keyMsg, keys.Delete):
		t := a.selected()
		if t == nil {
			return a, nil
		}
		a.confirmID = t.ID
		a.mode = modeConfirm
		return a, nil

	case key.Matches(keyMsg, keys.Complete):
		t := a.selected()
		if t == nil {
			return a, nil
		}
		a.startPrompt(promptEvidence, "evidence (optional)")
		return a, textinput.Blink

	case key.Matches(keyMsg, keys.Quick):
		a.startPrompt(promptQuick, "what did you just finish?")
		return a, textinput.Blink

	case key.Matches(keyMsg, keys.Undo):
		t := a.selected()
		if t == nil {
			return a, nil
		}
		deleted, found, err := a.store.UndoLastCompletion(t.ID)
		if err != nil {
			a.fail(err)
		} else if found {
			a.ok("undid completion #%d of task #%d", deleted, t.ID)
		} else {
			a.ok("task #%d had no completions; reopened", t.ID)
		}
		a.reload()
		return a, nil

	case key.Matches(keyMsg, keys.Search):
		a.startPrompt(promptSearch, "search")
		a.prompt.SetValue(a.search)
		return a, textinput.Blink

	case key.Matches(keyMsg, keys.Export):
		txt, csv, err := a.store.ExportDailySummary(a.summariesDir)
		if err != nil {
			a.fail(err)
		} else {
			a.ok("exported %s and %s", txt, csv)
		}
		return a, nil

	case key.Matches(keyMsg, keys.Refresh):
		a.reload()
		a.ok("refreshed")
		return a, nil
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

func (a *App) startPrompt(kind promptKind, placeholder string) {
	a.promptFor = kind
	a.prompt.Placeholder = placeholder
	a.prompt.SetValue("")
	a.prompt.Focus()
	a.mode = modePrompt
}

func (a *App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			a.mode = modeList
			return a, nil
		case "tab", "down":
			a.form.next()
			return a, nil
		case "shift+tab", "up":
			a.form.prev()
			return a, nil
		case "enter":
			if !a.form.validate() {
				return a, nil
			}
			a.submitForm()
			a.mode = modeList
			a.reload()
			return a, nil
		}
	}
	return a, a.form.update(msg)
}

func (a *App) submitForm() {
	f := a.form
	if a.editID == 0 {
		id, err := a.store.AddTask(db.NewTask{
			Title:       f.title(),
			Description: f.description(),
			Category:    f.category(),
			Priority:    f.priority(),
			DueDate:     f.dueDate(),
		})
		if err != nil {
			a.fail(err)
			return
		}
		a.ok("added task #%d", id)
		return
	}

	title, description := f.title(), f.description()
	category, priority, due := f.category(), f.priority(), f.dueDate()
	update := db.TaskUpdate{
		Title:       &title,
		Description: &description,
		Category:    &category,
		DueDate:     &due,
	}
	if priority != "" {
		update.Priority = &priority
	}
	if err := a.store.UpdateTask(a.editID, update); err != nil {
		a.fail(err)
		return
	}
	a.ok("updated task #%d", a.editID)
}

func (a *App) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			a.mode = modeList
			return a, nil
		case "enter":
			a.submitPrompt(strings.TrimSpace(a.prompt.Value()))
			a.mode = modeList
			a.reload()
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.prompt, cmd = a.prompt.Update(msg)
	return a, cmd
}

func (a *App) submitPrompt(value string) {
	switch a.promptFor {
	case promptEvidence:
		t := a.selected()
		if t == nil {
			return
		}
		cid, err := a.store.RecordCompletion(t.ID, value)
		if err != nil {
			a.fail(err)
			return
		}
		a.ok("completed task #%d (completion #%d)", t.ID, cid)

	case promptQuick:
		if value == "" {
			return
		}
		taskID, _, err := a.store.QuickComplete(value, "")
		if err != nil {
			a.fail(err)
			return
		}
		a.ok("quick-completed #%d: %s", taskID, value)

	case promptSearch:
		a.search = value
		if value == "" {
			a.ok("search cleared")
		} else {
			a.ok("searching for %q", value)
		}
	}
}

func (a *App) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		if err := a.store.DeleteTask(a.confirmID); err != nil {
			a.fail(err)
		} else {
			a.ok("deleted task #%d", a.confirmID)
		}
		a.mode = modeList
		a.reload()
	case "n", "N", "esc":
		a.mode = modeList
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("todotrack"))
	b.WriteString("\n")
	b.WriteString(a.streakLine())
	b.WriteString("\n\n")

	switch a.mode {
	case modeForm:
		header := "Add task"
		if a.editID != 0 {
			header = fmt.Sprintf("Edit task #%d", a.editID)
		}
		b.WriteString(a.styles.Header.Render(header))
		b.WriteString("\n\n")
		b.WriteString(a.form.view(a.styles))

	case modePrompt:
		b.WriteString(a.prompt.View())
		b.WriteString("\n\n")
		b.WriteString(a.styles.Subtle.Render("enter: confirm · esc: cancel"))

	case modeConfirm:
		b.WriteString(a.styles.Error.Render(fmt.Sprintf("Delete task #%d and all its completions? (y/n)", a.confirmID)))

	default:
		if a.search != "" {
			b.WriteString(a.styles.Subtle.Render(fmt.Sprintf("filter: %q", a.search)))
			b.WriteString("\n")
		}
		b.WriteString(a.table.View())
		b.WriteString("\n")
		b.WriteString(a.help.View(a.keys))
	}

	if a.status != "" {
		style := a.styles.Error
		if a.statusIsOK {
			style = a.styles.Success
		}
		b.WriteString("\n\n")
		b.WriteString(style.Render(a.status))
	}
	return b.String()
}

// streakLine renders the last 7 days as filled/empty cells, oldest first.
func (a *App) streakLine() string {
	cells := make([]string, 0, 7)
	for _, hit := range a.streak {
		if hit {
			cells = append(cells, a.styles.StreakHit.Render("■"))
		} else {
			cells = append(cells, a.styles.StreakMiss.Render("□"))
		}
	}
	return a.styles.Subtle.Render("streak ") + strings.Join(cells, " ")
}

