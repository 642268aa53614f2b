// Package streak turns a log of completion events into streak numbers.
//
// The package is pure: it does no I/O, keeps no state and never reads the
// system clock. Callers pass the reference time zone and "now" explicitly.
package streak

import (
	"fmt"
	"time"

	"github.com/julianstephens/streakline/internal/constants"
)

// Day is a calendar date with no time of day. The zero Day is not a valid date.
type Day struct {
	t time.Time // midnight UTC
}

// NewDay returns the Day for the given date. Out-of-range values are
// normalized the way time.Date does.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf projects t into loc and drops the time of day.
func DayOf(t time.Time, loc *time.Location) Day {
	y, m, d := t.In(loc).Date()
	return NewDay(y, m, d)
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return NewDay(t.Date()), nil
}

func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

// DaysSince returns the number of calendar days from o to d. It is negative
// when o is after d.
func (d Day) DaysSince(o Day) int {
	return int(d.t.Sub(o.t).Hours() / 24)
}

func (d Day) Before(o Day) bool { return d.t.Before(o.t) }
func (d Day) After(o Day) bool  { return d.t.After(o.t) }
func (d Day) Equal(o Day) bool  { return d.t.Equal(o.t) }
func (d Day) IsZero() bool      { return d.t.IsZero() }

// Compare returns -1, 0 or +1 like time.Time.Compare.
func (d Day) Compare(o Day) int { return d.t.Compare(o.t) }

// In returns midnight of d in loc.
func (d Day) In(loc *time.Location) time.Time {
	y, m, dd := d.t.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, loc)
}

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(constants.DateFormat)
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
