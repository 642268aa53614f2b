package tracker

import (
	"time"

	"github.com/julianstephens/streakline/internal/constants"
	"github.com/julianstephens/streakline/internal/streak"
)

// Status says whether a Report's numbers can be shown.
type Status string

const (
	StatusOK          Status = "ok"
	StatusUnavailable Status = "unavailable"
	StatusUnsupported Status = "unsupported"
)

// Report is a goal's streak numbers as seen from one time zone.
type Report struct {
	GoalID    string              `json:"goal_id"`
	GoalName  string              `json:"goal"`
	Frequency constants.Frequency `json:"frequency"`
	Timezone  string              `json:"timezone"`
	Status    Status              `json:"status"`
	// Stale is set when the numbers are the last known result because
	// fetching events failed.
	Stale      bool      `json:"stale,omitempty"`
	ComputedAt time.Time `json:"computed_at,omitzero"`
	Error      string    `json:"error,omitempty"`

	streak.Result
}

// Available reports whether the numbers are meaningful.
func (r Report) Available() bool {
	return r.Status == StatusOK
}

// AtRisk reports whether the streak is alive only through the grace day.
func (r Report) AtRisk() bool {
	return r.Available() && r.CurrentStreak > 0 && !r.ActiveToday
}

// MilestoneStatus is the elapsed-time view of a milestone.
type MilestoneStatus struct {
	Name      string     `json:"name"`
	StartDate streak.Day `json:"start_date"`
	Days      int        `json:"days"`
	// Started is false while the start date is still in the future.
	Started bool `json:"started"`
}

// DayMark is one cell of a goal's history.
type DayMark struct {
	Day    streak.Day `json:"date"`
	Logged bool       `json:"logged"`
}
