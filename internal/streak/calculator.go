package streak

import (
	"time"

	"github.com/julianstephens/streakline/internal/models"
)

// Result holds the numbers derived from one goal's completion log.
type Result struct {
	CurrentStreak int  `json:"current_streak"`
	BestStreak    int  `json:"best_streak"`
	// TotalDays counts distinct logged days up to today; days after today
	// are excluded, as they are from every other field.
	TotalDays     int  `json:"total_days"`
	LastLogged    *Day `json:"last_logged_date,omitempty"`
	ActiveToday   bool `json:"is_active_today"`
}

// Compute normalizes events in loc and computes streaks relative to now.
func Compute(events []models.CompletionEvent, loc *time.Location, now time.Time) Result {
	return ComputeStreaks(Normalize(events, loc), DayOf(now, loc))
}

// ComputeStreaks derives streak numbers from days, which must be sorted
// newest first as returned by Normalize.
//
// Days after today are ignored entirely. A streak whose last day is
// yesterday is still current, since today has not ended yet.
func ComputeStreaks(days []Day, today Day) Result {
	days = clamp(days, today)
	if len(days) == 0 {
		return Result{}
	}

	last := days[0]
	res := Result{
		TotalDays:   len(days),
		LastLogged:  &last,
		ActiveToday: last.Equal(today),
	}
	res.CurrentStreak = currentStreak(days, today, res.ActiveToday)
	res.BestStreak = max(bestStreak(days), res.CurrentStreak)
	return res
}

// clamp drops days after today and repeated days. It only allocates when
// something has to be dropped.
func clamp(days []Day, today Day) []Day {
	start := 0
	for start < len(days) && days[start].After(today) {
		start++
	}
	days = days[start:]

	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1]) {
			out := make([]Day, i, len(days))
			copy(out, days[:i])
			for _, d := range days[i:] {
				if !d.Equal(out[len(out)-1]) {
					out = append(out, d)
				}
			}
			return out
		}
	}
	return days
}

func currentStreak(days []Day, today Day, activeToday bool) int {
	cursor := today
	if !activeToday {
		cursor = today.AddDays(-1)
	}

	n := 0
	for _, d := range days {
		switch {
		case d.Equal(cursor):
			n++
			cursor = cursor.AddDays(-1)
		case d.Before(cursor):
			return n
		}
		// newer than the cursor: already consumed, skip
	}
	return n
}

func bestStreak(days []Day) int {
	best, run := 0, 0
	expected := days[0]
	for _, d := range days {
		if d.Equal(expected) {
			run++
			best = max(best, run)
		} else {
			run = 1
		}
		expected = d.AddDays(-1)
	}
	return best
}
