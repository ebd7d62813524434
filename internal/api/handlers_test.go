package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmathes/todotrack/internal/db"
	"github.com/rmathes/todotrack/internal/events"
)

func newTestServer(t *testing.T) (*Server, *db.DB) {
	t.Helper()
	store := db.NewTestDB(t)
	s := New(Config{
		Addr:         ":0",
		Store:        store,
		SummariesDir: t.TempDir(),
	})
	t.Cleanup(func() { s.publisher.Close() })
	return s, store
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, "GET", "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, rec))
}

func TestCategoryPresets(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, "GET", "/api/presets/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[[]string](t, rec), "temp")
}

func TestListTasks_EmptyIsArray(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, "GET", "/api/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestCreateAndListTasks(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/tasks", map[string]string{
		"title":    "write tests",
		"category": "dev",
		"priority": "high",
		"due_date": "2026-09-15",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[map[string]int64](t, rec)
	assert.NotZero(t, created["id"])

	rec = doJSON(t, s, "GET", "/api/tasks?category=dev", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tasks := decode[[]db.Task](t, rec)
	require.Len(t, tasks, 1)
	assert.Equal(t, "write tests", tasks[0].Title)
	assert.Equal(t, "high", tasks[0].Priority)
	assert.Equal(t, "2026-09-15", tasks[0].DueDate)
}

func TestCreateTask_Validation(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/tasks", map[string]string{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, "POST", "/api/tasks", map[string]string{"title": "x", "priority": "urgent"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "INVALID_PRIORITY", body["code"])
}

func TestUpdateTask(t *testing.T) {
	s, store := newTestServer(t)

	id, err := store.AddTask(db.NewTask{Title: "before", Description: "stays"})
	require.NoError(t, err)

	rec := doJSON(t, s, "PATCH", "/api/tasks/1", map[string]string{"title": "after"})
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := store.GetTask(id)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, "stays", got.Description)
}

func TestUpdateTask_UnknownIDIsOk(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, "PATCH", "/api/tasks/424242", map[string]string{"title": "ghost"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateTask_BadID(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, "PATCH", "/api/tasks/notanumber", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteTask(t *testing.T) {
	s, store := newTestServer(t)

	id, err := store.AddTask(db.NewTask{Title: "doomed"})
	require.NoError(t, err)

	rec := doJSON(t, s, "DELETE", "/api/tasks/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := store.GetTask(id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCompleteAndUncomplete(t *testing.T) {
	s, store := newTestServer(t)

	id, err := store.AddTask(db.NewTask{Title: "todo"})
	require.NoError(t, err)

	rec := doJSON(t, s, "POST", "/api/tasks/1/complete", map[string]string{"evidence": "proof"})
	require.Equal(t, http.StatusOK, rec.Code)
	completed := decode[map[string]int64](t, rec)
	assert.NotZero(t, completed["completion_id"])

	got, err := store.GetTask(id)
	require.NoError(t, err)
	assert.Equal(t, db.StatusDone, got.Status)

	rec = doJSON(t, s, "POST", "/api/tasks/1/uncomplete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	undone := decode[map[string]*int64](t, rec)
	require.NotNil(t, undone["removed_completion_id"])
	assert.Equal(t, completed["completion_id"], *undone["removed_completion_id"])

	// Second undo has nothing to remove but still succeeds.
	rec = doJSON(t, s, "POST", "/api/tasks/1/uncomplete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	undone = decode[map[string]*int64](t, rec)
	assert.Nil(t, undone["removed_completion_id"])
}

func TestCompleteTask_UnknownID(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/tasks/77/complete", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuickComplete(t *testing.T) {
	s, store := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/quick-complete", map[string]string{"title": "buy milk"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[map[string]int64](t, rec)
	assert.NotZero(t, resp["id"])
	assert.NotZero(t, resp["completion_id"])

	got, err := store.GetTask(resp["id"])
	require.NoError(t, err)
	assert.True(t, got.IsTemp)
	assert.Equal(t, db.StatusDone, got.Status)
}

func TestQuickComplete_PublishesBothEvents(t *testing.T) {
	s, _ := newTestServer(t)
	ch := s.publisher.Subscribe()

	rec := doJSON(t, s, "POST", "/api/quick-complete", map[string]string{"title": "logged"})
	require.Equal(t, http.StatusOK, rec.Code)

	var got []events.Type
	for i := 0; i < 2; i++ {
		select {
		case ev := <-ch:
			got = append(got, ev.Type)
		case <-time.After(time.Second):
			t.Fatal("expected two events from quick-complete")
		}
	}
	assert.Equal(t, []events.Type{events.TypeTaskCreated, events.TypeCompletionRecorded}, got)
}

func TestQuickComplete_MissingTitle(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/quick-complete", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStreak(t *testing.T) {
	s, store := newTestServer(t)

	id, err := store.AddTask(db.NewTask{Title: "daily"})
	require.NoError(t, err)
	_, err = store.RecordCompletion(id, "")
	require.NoError(t, err)

	rec := doJSON(t, s, "GET", "/api/streak", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	streak := decode[[]bool](t, rec)
	require.Len(t, streak, 7)
	assert.True(t, streak[6]) // today
}

func TestExportSummary(t *testing.T) {
	s, store := newTestServer(t)

	_, err := store.AddTask(db.NewTask{Title: "exported"})
	require.NoError(t, err)

	rec := doJSON(t, s, "POST", "/api/summary/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	paths := decode[map[string]string](t, rec)

	for _, p := range []string{paths["txt"], paths["csv"]} {
		_, err := os.Stat(p)
		assert.NoError(t, err, "artifact %s should exist", p)
	}
}
