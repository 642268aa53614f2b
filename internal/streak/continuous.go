package streak

// ContinuousDays returns the number of whole days elapsed from start to today,
// for runs that are continuous rather than made of daily check-ins. A start
// of today, or in the future, gives 0.
func ContinuousDays(start, today Day) int {
	if !start.Before(today) {
		return 0
	}
	return today.DaysSince(start)
}
