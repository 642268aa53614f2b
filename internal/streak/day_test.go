package streak

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2025-01-10")
	if err != nil {
		t.Fatalf("ParseDay failed: %v", err)
	}
	if !d.Equal(NewDay(2025, time.January, 10)) {
		t.Errorf("ParseDay = %s, want 2025-01-10", d)
	}

	for _, bad := range []string{"", "2025-1-10", "10/01/2025", "2025-02-30"} {
		if _, err := ParseDay(bad); err == nil {
			t.Errorf("ParseDay(%q) should fail", bad)
		}
	}
}

func TestDayArithmetic(t *testing.T) {
	d := NewDay(2024, time.December, 31)

	if got := d.AddDays(1).String(); got != "2025-01-01" {
		t.Errorf("AddDays(1) = %s, want 2025-01-01", got)
	}
	if got := NewDay(2024, time.March, 1).AddDays(-1).String(); got != "2024-02-29" {
		t.Errorf("leap day: got %s, want 2024-02-29", got)
	}
	if got := NewDay(2025, time.January, 10).DaysSince(d); got != 10 {
		t.Errorf("DaysSince = %d, want 10", got)
	}
	if got := d.DaysSince(NewDay(2025, time.January, 10)); got != -10 {
		t.Errorf("DaysSince (reverse) = %d, want -10", got)
	}
	if !d.Before(d.AddDays(1)) || !d.AddDays(1).After(d) || d.Compare(d) != 0 {
		t.Error("ordering helpers disagree")
	}
}

func TestDayOfUsesLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 2025-01-10 02:00 UTC is the 10th in Tokyo and still the 9th in New York.
	instant := time.Date(2025, time.January, 10, 2, 0, 0, 0, time.UTC)
	if got := DayOf(instant, tokyo).String(); got != "2025-01-10" {
		t.Errorf("Tokyo day = %s, want 2025-01-10", got)
	}
	if got := DayOf(instant, ny).String(); got != "2025-01-09" {
		t.Errorf("New York day = %s, want 2025-01-09", got)
	}
}

func TestDayDSTTransitions(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// Spring forward on 2025-03-09: that local day is 23 hours long.
	before := NewDay(2025, time.March, 8)
	after := before.AddDays(2)
	if after.String() != "2025-03-10" {
		t.Errorf("AddDays across DST = %s", after)
	}
	if got := after.In(ny).Sub(before.In(ny)); got != 47*time.Hour {
		t.Errorf("local span = %v, want 47h", got)
	}
}

func TestDayTextMarshalling(t *testing.T) {
	d := NewDay(2025, time.January, 10)
	b, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	var back Day
	if err := back.UnmarshalText(b); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("got %s, want %s", back, d)
	}
	if (Day{}).String() != "" {
		t.Error("zero Day should print as empty string")
	}
}
