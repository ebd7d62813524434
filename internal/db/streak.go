package db

import (
	"fmt"
	"time"
)

// Last7DayStreak reports, for each of the 7 local calendar days ending
// today, whether at least one completion falls within that day. The result
// is oldest day first, today last.
func (d *DB) Last7DayStreak() ([7]bool, error) {
	var streak [7]bool

	now := d.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for i := 0; i < 7; i++ {
		// Half-open window up to the next calendar day's start. Adding
		// clock hours instead would drift on DST transition days.
		day := today.AddDate(0, 0, i-6)
		start := day.Format(timeLayout)
		end := day.AddDate(0, 0, 1).Format(timeLayout)

		var count int
		err := d.QueryRow(`
			SELECT COUNT(*) FROM completions WHERE completed_at >= ? AND completed_at < ?
		`, start, end).Scan(&count)
		if err != nil {
			return streak, fmt.Errorf("count completions for %s: %w", day.Format("2006-01-02"), err)
		}
		streak[i] = count > 0
	}
	return streak, nil
}
