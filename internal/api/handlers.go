package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rmathes/todotrack/internal/config"
	"github.com/rmathes/todotrack/internal/db"
	"github.com/rmathes/todotrack/internal/events"
)

// handleHealth reports server liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, map[string]string{"status": "ok"})
}

// handleCategoryPresets returns the suggested task categories.
func (s *Server) handleCategoryPresets(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, config.CategoryPresets())
}

// handleListTasks returns tasks matching optional search/category filters.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.ListTasks(db.ListOpts{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		s.storeError(w, err)
		return
	}

	// Ensure we return an empty array, not null.
	if tasks == nil {
		tasks = []db.Task{}
	}
	s.jsonResponse(w, tasks)
}

// handleCreateTask creates a new task.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
		Category    string `json:"category,omitempty"`
		Priority    string `json:"priority,omitempty"`
		DueDate     string `json:"due_date,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		s.jsonError(w, "title is required", http.StatusBadRequest)
		return
	}

	id, err := s.store.AddTask(db.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		s.storeError(w, err)
		return
	}

	s.publisher.Publish(events.Event{Type: events.TypeTaskCreated, TaskID: id})
	s.jsonResponse(w, map[string]int64{"id": id})
}

// handleUpdateTask applies a partial update. Absent fields are left
// unchanged; an unknown id is a silent zero-row update, reported as ok.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := s.taskID(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Priority    *string `json:"priority"`
		DueDate     *string `json:"due_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := s.store.UpdateTask(id, db.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		s.storeError(w, err)
		return
	}

	s.publisher.Publish(events.Event{Type: events.TypeTaskUpdated, TaskID: id})
	s.jsonResponse(w, map[string]bool{"ok": true})
}

// handleDeleteTask removes a task and all its completions.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := s.taskID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteTask(id); err != nil {
		s.storeError(w, err)
		return
	}

	s.publisher.Publish(events.Event{Type: events.TypeTaskDeleted, TaskID: id})
	s.jsonResponse(w, map[string]bool{"ok": true})
}

// handleCompleteTask records a completion with optional evidence.
func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := s.taskID(w, r)
	if !ok {
		return
	}

	var req struct {
		Evidence string `json:"evidence,omitempty"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.jsonError(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	cid, err := s.store.RecordCompletion(id, req.Evidence)
	if err != nil {
		s.storeError(w, err)
		return
	}

	s.publisher.Publish(events.Event{Type: events.TypeCompletionRecorded, TaskID: id})
	s.jsonResponse(w, map[string]int64{"completion_id": cid})
}

// handleUncompleteTask undoes the task's most recent completion. The
// removed id is null when the task had no completions; the status is
// forced back to open either way.
func (s *Server) handleUncompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := s.taskID(w, r)
	if !ok {
		return
	}

	deleted, found, err := s.store.UndoLastCompletion(id)
	if err != nil {
		s.storeError(w, err)
		return
	}

	s.publisher.Publish(events.Event{Type: events.TypeCompletionUndone, TaskID: id})
	var removed *int64
	if found {
		removed = &deleted
	}
	s.jsonResponse(w, map[string]*int64{"removed_completion_id": removed})
}

// handleQuickComplete creates a temporary task and completes it in one call.
func (s *Server) handleQuickComplete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string `json:"title"`
		Evidence string `json:"evidence,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		s.jsonError(w, "title is required", http.StatusBadRequest)
		return
	}

	taskID, completionID, err := s.store.QuickComplete(req.Title, req.Evidence)
	if err != nil {
		s.storeError(w, err)
		return
	}

	// Quick-complete is a create plus a completion; announce both so
	// listeners see the new temp task.
	s.publisher.Publish(events.Event{Type: events.TypeTaskCreated, TaskID: taskID})
	s.publisher.Publish(events.Event{Type: events.TypeCompletionRecorded, TaskID: taskID})
	s.jsonResponse(w, map[string]int64{"id": taskID, "completion_id": completionID})
}

// handleStreak returns the 7-day completion streak, oldest day first.
func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := s.store.Last7DayStreak()
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.jsonResponse(w, streak[:])
}

// handleExportSummary writes today's summary artifacts and returns their paths.
func (s *Server) handleExportSummary(w http.ResponseWriter, r *http.Request) {
	txt, csv, err := s.store.ExportDailySummary(s.summariesDir)
	if err != nil {
		s.storeError(w, err)
		return
	}

	s.publisher.Publish(events.Event{
		Type: events.TypeSummaryExported,
		Data: map[string]string{"txt": txt, "csv": csv},
	})
	s.jsonResponse(w, map[string]string{"txt": txt, "csv": csv})
}

// taskID parses the {id} path segment, writing a 400 on failure.
func (s *Server) taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.jsonError(w, "invalid task id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
