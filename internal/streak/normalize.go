package streak

import (
	"slices"
	"time"

	"github.com/julianstephens/streakline/internal/models"
)

// Normalize projects every event's LoggedAt into loc and returns the distinct
// calendar days, newest first. Future-dated events are kept; deciding what to
// do with them is ComputeStreaks' job.
func Normalize(events []models.CompletionEvent, loc *time.Location) []Day {
	if len(events) == 0 {
		return nil
	}

	seen := make(map[Day]struct{}, len(events))
	days := make([]Day, 0, len(events))
	for _, e := range events {
		d := DayOf(e.LoggedAt, loc)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}

	slices.SortFunc(days, func(a, b Day) int { return b.Compare(a) })
	return days
}
