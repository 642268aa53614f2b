package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/streakline/internal/constants"
)

// Goal is a trackable activity. Completion events are logged against it.
type Goal struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Frequency  constants.Frequency `json:"frequency"`
	CreatedAt  time.Time           `json:"created_at"`
	ArchivedAt *time.Time          `json:"archived_at,omitempty"`
	DeletedAt  *time.Time          `json:"deleted_at,omitempty"`
}

// Active reports whether the goal can still receive completion events.
func (g Goal) Active() bool {
	return g.ArchivedAt == nil && g.DeletedAt == nil
}

// ParseFrequency parses a frequency name. An empty string means daily.
func ParseFrequency(s string) (constants.Frequency, error) {
	switch f := constants.Frequency(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return constants.FrequencyDaily, nil
	case constants.FrequencyDaily, constants.FrequencyWeekly, constants.FrequencyMonthly:
		return f, nil
	default:
		return "", fmt.Errorf("invalid frequency %q (expected daily, weekly or monthly)", s)
	}
}
