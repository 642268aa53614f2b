package tracker

import "errors"

var (
	// ErrFutureEvent is returned when a completion is logged for a day after today.
	ErrFutureEvent = errors.New("cannot log a completion for a future day")
	// ErrUnsupportedFrequency is returned for goals that are not tracked daily.
	ErrUnsupportedFrequency = errors.New("streaks are only tracked for daily goals")
	// ErrGoalInactive is returned when logging against an archived or deleted goal.
	ErrGoalInactive = errors.New("goal is archived or deleted")
)
