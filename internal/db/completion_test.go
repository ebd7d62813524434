package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trackerrors "github.com/rmathes/todotrack/internal/errors"
)

func TestRecordCompletion_FlipsStatus(t *testing.T) {
	d := NewTestDB(t)

	id, err := d.AddTask(NewTask{Title: "flip me"})
	require.NoError(t, err)

	cid, err := d.RecordCompletion(id, "did it")
	require.NoError(t, err)
	assert.NotZero(t, cid)

	got, err := d.GetTask(id)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, got.Status)

	completions, err := d.CompletionsForTask(id)
	require.NoError(t, err)
	require.Len(t, completions, 1)
	assert.Equal(t, "did it", completions[0].Evidence)
}

func TestRecordCompletion_UnknownTask(t *testing.T) {
	d := NewTestDB(t)

	_, err := d.RecordCompletion(404, "")
	require.Error(t, err)
	assert.Equal(t, trackerrors.CodeTaskNotFound, trackerrors.AsTrackError(err).Code)
}

func TestUndoLastCompletion_RemovesNewest(t *testing.T) {
	d := NewTestDB(t)

	clock := time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)
	d.SetNow(func() time.Time { return clock })

	id, err := d.AddTask(NewTask{Title: "twice done"})
	require.NoError(t, err)

	first, err := d.RecordCompletion(id, "morning")
	require.NoError(t, err)
	clock = clock.Add(2 * time.Hour)
	second, err := d.RecordCompletion(id, "later")
	require.NoError(t, err)

	deleted, ok, err := d.UndoLastCompletion(id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, second, deleted)

	got, err := d.GetTask(id)
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, got.Status)

	completions, err := d.CompletionsForTask(id)
	require.NoError(t, err)
	require.Len(t, completions, 1)
	assert.Equal(t, first, completions[0].ID)
}

func TestUndoLastCompletion_RoundTripWithRecord(t *testing.T) {
	d := NewTestDB(t)

	id, err := d.AddTask(NewTask{Title: "round trip"})
	require.NoError(t, err)

	cid, err := d.RecordCompletion(id, "")
	require.NoError(t, err)

	deleted, ok, err := d.UndoLastCompletion(id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, cid, deleted)
}

func TestUndoLastCompletion_EmptyLedgerForcesOpen(t *testing.T) {
	d := NewTestDB(t)

	id, err := d.AddTask(NewTask{Title: "never done"})
	require.NoError(t, err)

	// Force the status out of band, then verify undo still flips it back.
	_, err = d.Exec("UPDATE tasks SET status = 'done' WHERE id = ?", id)
	require.NoError(t, err)

	_, ok, err := d.UndoLastCompletion(id)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := d.GetTask(id)
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, got.Status)
}

func TestQuickComplete(t *testing.T) {
	d := NewTestDB(t)

	taskID, completionID, err := d.QuickComplete("buy milk", "")
	require.NoError(t, err)
	assert.NotZero(t, taskID)
	assert.NotZero(t, completionID)

	got, err := d.GetTask(taskID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "buy milk", got.Title)
	assert.Equal(t, TempCategory, got.Category)
	assert.Equal(t, PriorityMedium, got.Priority)
	assert.Equal(t, StatusDone, got.Status)
	assert.True(t, got.IsTemp)
	assert.Empty(t, got.DueDate)

	completions, err := d.CompletionsForTask(taskID)
	require.NoError(t, err)
	require.Len(t, completions, 1)
	assert.Equal(t, completionID, completions[0].ID)

	tasks, err := d.ListTasks(ListOpts{})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestDeleteTask_CascadesCompletions(t *testing.T) {
	d := NewTestDB(t)

	id, err := d.AddTask(NewTask{Title: "doomed"})
	require.NoError(t, err)
	_, err = d.RecordCompletion(id, "one")
	require.NoError(t, err)
	_, err = d.RecordCompletion(id, "two")
	require.NoError(t, err)

	require.NoError(t, d.DeleteTask(id))

	var orphans int
	require.NoError(t, d.QueryRow("SELECT COUNT(*) FROM completions").Scan(&orphans))
	assert.Zero(t, orphans)

	_, ok, err := d.UndoLastCompletion(id)
	require.NoError(t, err)
	assert.False(t, ok)
}
