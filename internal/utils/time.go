package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/streakline/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// TodayIn returns the YYYY-MM-DD date of now in loc.
func TodayIn(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(constants.DateFormat)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	// Return the date at midnight in the specified timezone
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ParseLoggedAt interprets the --at value of `log`.
//
// Accepted forms:
//   - ""                      now
//   - "2025-01-10"            noon of that day in loc
//   - "2025-01-10T07:30"      that wall-clock time in loc
//   - RFC 3339 with an offset that exact instant
//
// Noon is used for bare dates so the instant stays on the same calendar day
// in loc even across a DST shift.
func ParseLoggedAt(input string, loc *time.Location, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return now, nil
	}

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(constants.DateTimeFormat, input, loc); err == nil {
		return t, nil
	}
	if d, err := ParseDateInLocation(input, loc); err == nil {
		return d.Add(12 * time.Hour), nil
	}

	return time.Time{}, fmt.Errorf("invalid time %q (expected YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC 3339)", input)
}
