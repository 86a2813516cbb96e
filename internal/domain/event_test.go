package domain

import (
	"testing"
	"time"
)

func TestSeasonOf(t *testing.T) {
	tests := []struct {
		month time.Month
		want  Season
	}{
		{time.January, SeasonWinter},
		{time.February, SeasonWinter},
		{time.March, SeasonSpring},
		{time.April, SeasonSpring},
		{time.May, SeasonSpring},
		{time.June, SeasonSummer},
		{time.July, SeasonSummer},
		{time.August, SeasonSummer},
		{time.September, SeasonAutumn},
		{time.October, SeasonAutumn},
		{time.November, SeasonAutumn},
		{time.December, SeasonWinter},
	}
	for _, tt := range tests {
		if got := SeasonOf(tt.month); got != tt.want {
			t.Errorf("SeasonOf(%s) = %s, want %s", tt.month, got, tt.want)
		}
	}
}

func TestWeekTypeOf(t *testing.T) {
	tests := []struct {
		day  time.Weekday
		want WeekType
	}{
		{time.Monday, WeekTypeWeekday},
		{time.Tuesday, WeekTypeWeekday},
		{time.Wednesday, WeekTypeWeekday},
		{time.Thursday, WeekTypeWeekday},
		{time.Friday, WeekTypeWeekday},
		{time.Saturday, WeekTypeWeekend},
		{time.Sunday, WeekTypeWeekend},
	}
	for _, tt := range tests {
		if got := WeekTypeOf(tt.day); got != tt.want {
			t.Errorf("WeekTypeOf(%s) = %s, want %s", tt.day, got, tt.want)
		}
	}
}

func TestWeekdayNamesOrder(t *testing.T) {
	names := WeekdayNames()
	if names[0] != "Monday" || names[6] != "Sunday" {
		t.Errorf("WeekdayNames() = %v, want Monday-first order", names)
	}
	if len(names) != 7 {
		t.Errorf("WeekdayNames() has %d entries, want 7", len(names))
	}
}

func TestEventPresenceHelpers(t *testing.T) {
	var e Event
	if e.HasDate() || e.HasPlayedAt() {
		t.Error("zero event should have no date and no timestamp")
	}
	e.PlayedDate = time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	e.PlayedAt = time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)
	if !e.HasDate() || !e.HasPlayedAt() {
		t.Error("populated event should report both fields present")
	}
}

func TestValidSeason(t *testing.T) {
	for _, s := range Seasons() {
		if !ValidSeason(s) {
			t.Errorf("ValidSeason(%s) = false, want true", s)
		}
	}
	if ValidSeason("Monsoon") {
		t.Error(`ValidSeason("Monsoon") = true, want false`)
	}
}
