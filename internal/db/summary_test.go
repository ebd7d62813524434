package db

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportDailySummary_ArtifactNaming(t *testing.T) {
	d := NewTestDB(t)
	dir := t.TempDir()

	clock := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)
	d.SetNow(func() time.Time { return clock })

	_, err := d.AddTask(NewTask{Title: "only task"})
	require.NoError(t, err)

	txt1, csv1, err := d.ExportDailySummary(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "summary_2026-03-10.txt"), txt1)
	assert.Equal(t, filepath.Join(dir, "summary_2026-03-10.csv"), csv1)

	// Exporting twice on the same day overwrites the same artifacts.
	txt2, csv2, err := d.ExportDailySummary(dir)
	require.NoError(t, err)
	assert.Equal(t, txt1, txt2)
	assert.Equal(t, csv1, csv2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestExportDailySummary_RowCountEqualsTaskCount(t *testing.T) {
	d := NewTestDB(t)
	dir := t.TempDir()

	for _, title := range []string{"one", "two", "three"} {
		_, err := d.AddTask(NewTask{Title: title})
		require.NoError(t, err)
	}

	_, csvPath, err := d.ExportDailySummary(dir)
	require.NoError(t, err)

	records := readCSV(t, csvPath)
	assert.Len(t, records, 1+3) // header + one row per task
}

func TestExportDailySummary_TextContent(t *testing.T) {
	d := NewTestDB(t)
	dir := t.TempDir()

	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	d.SetNow(func() time.Time { return clock })

	id, err := d.AddTask(NewTask{Title: "report", Category: "work", Priority: PriorityHigh})
	require.NoError(t, err)
	clock = clock.Add(time.Hour)
	_, err = d.RecordCompletion(id, "sent to boss")
	require.NoError(t, err)

	// A completion from yesterday must not appear in today's section.
	other, err := d.AddTask(NewTask{Title: "stale"})
	require.NoError(t, err)
	clock = time.Date(2026, 3, 9, 9, 0, 0, 0, time.Local)
	_, err = d.RecordCompletion(other, "old news")
	require.NoError(t, err)
	clock = time.Date(2026, 3, 10, 11, 0, 0, 0, time.Local)

	txtPath, _, err := d.ExportDailySummary(dir)
	require.NoError(t, err)

	content, err := os.ReadFile(txtPath)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "Daily summary (2026-03-10)")
	assert.Contains(t, text, "evidence: sent to boss")
	assert.NotContains(t, text, "old news")
	// The full task list includes the stale task with its current status.
	assert.Contains(t, text, "[done] stale")
}

func TestExportDailySummary_EvidenceScanOrder(t *testing.T) {
	d := NewTestDB(t)
	dir := t.TempDir()

	clock := time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)
	d.SetNow(func() time.Time { return clock })

	id, err := d.AddTask(NewTask{Title: "multi"})
	require.NoError(t, err)

	// Three completions today: evidence, empty, evidence. The earliest
	// non-empty evidence of the day wins.
	_, err = d.RecordCompletion(id, "first note")
	require.NoError(t, err)
	clock = clock.Add(time.Hour)
	_, err = d.RecordCompletion(id, "")
	require.NoError(t, err)
	clock = clock.Add(time.Hour)
	_, err = d.RecordCompletion(id, "last note")
	require.NoError(t, err)

	_, csvPath, err := d.ExportDailySummary(dir)
	require.NoError(t, err)

	records := readCSV(t, csvPath)
	require.Len(t, records, 2)
	header, row := records[0], records[1]
	assert.Equal(t, "latest_evidence", header[len(header)-1])
	assert.Equal(t, "first note", row[len(row)-1])
}

func TestExportDailySummary_FallBackDayLastHour(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	d := NewTestDB(t)
	dir := t.TempDir()

	// 2026-11-01 is a 25-hour day in New York; a completion in its last
	// hour must appear in that day's summary.
	clock := time.Date(2026, 11, 1, 23, 30, 0, 0, loc)
	d.SetNow(func() time.Time { return clock })

	id, err := d.AddTask(NewTask{Title: "late run"})
	require.NoError(t, err)
	_, err = d.RecordCompletion(id, "after dark")
	require.NoError(t, err)

	txtPath, _, err := d.ExportDailySummary(dir)
	require.NoError(t, err)

	content, err := os.ReadFile(txtPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "evidence: after dark")
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportDailySummary_CreatesDir(t *testing.T) {
	d := NewTestDB(t)
	dir := filepath.Join(t.TempDir(), "summaries")

	_, _, err := d.ExportDailySummary(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExportDailySummary_EvidenceWithCommas(t *testing.T) {
	d := NewTestDB(t)
	dir := t.TempDir()

	id, err := d.AddTask(NewTask{Title: "csv hazard"})
	require.NoError(t, err)
	_, err = d.RecordCompletion(id, `ran 5k, then "stretched"`)
	require.NoError(t, err)

	_, csvPath, err := d.ExportDailySummary(dir)
	require.NoError(t, err)

	records := readCSV(t, csvPath)
	require.Len(t, records, 2)
	row := records[1]
	assert.True(t, strings.Contains(row[len(row)-1], `"stretched"`))
}
