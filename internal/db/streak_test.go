package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLast7DayStreak_Empty(t *testing.T) {
	d := NewTestDB(t)

	streak, err := d.Last7DayStreak()
	require.NoError(t, err)
	assert.Equal(t, [7]bool{}, streak)
}

func TestLast7DayStreak_FixedClock(t *testing.T) {
	d := NewTestDB(t)

	today := time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)
	clock := today
	d.SetNow(func() time.Time { return clock })

	id, err := d.AddTask(NewTask{Title: "streaky"})
	require.NoError(t, err)

	// One completion two days ago, one today.
	clock = today.AddDate(0, 0, -2)
	_, err = d.RecordCompletion(id, "")
	require.NoError(t, err)
	clock = today
	_, err = d.RecordCompletion(id, "")
	require.NoError(t, err)

	streak, err := d.Last7DayStreak()
	require.NoError(t, err)

	// Oldest first: 2-days-ago is index 4, today is index 6.
	assert.Equal(t, [7]bool{false, false, false, false, true, false, true}, streak)
}

func TestLast7DayStreak_DayBoundaries(t *testing.T) {
	d := NewTestDB(t)

	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	clock := today
	d.SetNow(func() time.Time { return clock })

	id, err := d.AddTask(NewTask{Title: "edges"})
	require.NoError(t, err)

	// Last second of yesterday counts for yesterday, not today.
	clock = time.Date(2026, 3, 9, 23, 59, 59, 0, time.Local)
	_, err = d.RecordCompletion(id, "")
	require.NoError(t, err)

	// First second of six days ago still lands in the window.
	clock = time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local)
	_, err = d.RecordCompletion(id, "")
	require.NoError(t, err)

	// Eight days ago is outside the window.
	clock = time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)
	_, err = d.RecordCompletion(id, "")
	require.NoError(t, err)

	clock = today
	streak, err := d.Last7DayStreak()
	require.NoError(t, err)

	assert.Equal(t, [7]bool{true, false, false, false, false, true, false}, streak)
}

func TestLast7DayStreak_FallBackDayCoversLastHour(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	d := NewTestDB(t)

	// 2026-11-01 is a 25-hour day in New York; a completion in its last
	// hour must still count for that day.
	clock := time.Date(2026, 11, 1, 23, 30, 0, 0, loc)
	d.SetNow(func() time.Time { return clock })

	id, err := d.AddTask(NewTask{Title: "late"})
	require.NoError(t, err)
	_, err = d.RecordCompletion(id, "")
	require.NoError(t, err)

	streak, err := d.Last7DayStreak()
	require.NoError(t, err)
	assert.True(t, streak[6], "completion at 23:30 today must count for today")
}

func TestLast7DayStreak_SpringForwardDayDoesNotSpill(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	d := NewTestDB(t)

	// 2026-03-08 is a 23-hour day in New York; the following day's first
	// hour belongs to March 9, not March 8.
	clock := time.Date(2026, 3, 9, 0, 30, 0, 0, loc)
	d.SetNow(func() time.Time { return clock })

	id, err := d.AddTask(NewTask{Title: "early"})
	require.NoError(t, err)
	_, err = d.RecordCompletion(id, "")
	require.NoError(t, err)

	streak, err := d.Last7DayStreak()
	require.NoError(t, err)
	assert.True(t, streak[6], "completion at 00:30 today must count for today")
	assert.False(t, streak[5], "March 8 had no completions")
}
