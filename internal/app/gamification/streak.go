package gamification

import (
	"time"

	"github.com/quackverse/ducktyper/internal/domain"
)

// dayFormat is the calendar-day layout used for streak tracking and
// day-guard event ids.
const dayFormat = "2006-01-02"

// recordActivity updates the daily streak counters for the given day.
// Same calendar day: no-op. Consecutive day: extend. Any gap: reset to 1.
// Streaks break silently — no nagging.
// Returns true if the counters changed (caller persists).
func recordActivity(p *domain.UserProgress, day time.Time) bool {
	today := day.UTC().Format(dayFormat)

	if p.LastActiveDate == today {
		return false // Already counted today
	}

	if p.LastActiveDate == "" {
		p.CurrentStreak = 1
	} else {
		last, err := time.Parse(dayFormat, p.LastActiveDate)
		cur, err2 := time.Parse(dayFormat, today)
		if err != nil || err2 != nil {
			// Unreadable date — start over rather than guess
			p.CurrentStreak = 1
		} else if cur.Sub(last) == 24*time.Hour {
			p.CurrentStreak++
		} else {
			p.CurrentStreak = 1
		}
	}

	p.LastActiveDate = today
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	return true
}
