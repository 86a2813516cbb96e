package domain

import "time"

// Season is the meteorological quarter a play falls into. The mapping is the
// fixed Northern-hemisphere one: December through February is winter, and so
// on in three-month blocks.
type Season string

const (
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonAutumn Season = "Autumn"
)

// Seasons lists all seasons in calendar order starting at spring.
func Seasons() [4]Season {
	return [4]Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}
}

// WeekType classifies a date as a working day or part of the weekend.
type WeekType string

const (
	WeekTypeWeekday WeekType = "Weekday"
	WeekTypeWeekend WeekType = "Weekend"
)

// RawEvent is one playlist row exactly as delivered by the store, before any
// parsing. All fields are raw text; the empty string stands for SQL NULL.
type RawEvent struct {
	Station    string
	Artist     string
	Title      string
	PlayedDate string
	PlayedTime string
	PlayedAt   string
}

// Event is one normalized broadcast record. It is immutable after
// normalization: every derived field is a pure function of PlayedAt.
//
// A zero PlayedDate or PlayedAt means the source value was missing or did not
// parse; the row is kept and the derived fields stay absent. Hour uses -1 as
// its absent value because hour 0 is valid.
type Event struct {
	Station    string    `json:"station"`
	Artist     string    `json:"artist"`
	Title      string    `json:"title"`
	PlayedDate time.Time `json:"played_date"`
	PlayedTime string    `json:"played_time"`
	PlayedAt   time.Time `json:"played_at"`

	Month    int      `json:"month"`
	Weekday  string   `json:"weekday"`
	Hour     int      `json:"hour"`
	Season   Season   `json:"season"`
	WeekType WeekType `json:"week_type"`
}

// HasDate reports whether the row carries a parseable calendar date.
func (e Event) HasDate() bool { return !e.PlayedDate.IsZero() }

// HasPlayedAt reports whether the row carries a parseable full timestamp.
func (e Event) HasPlayedAt() bool { return !e.PlayedAt.IsZero() }

// WeekdayNames returns the seven weekday names in Monday-first order, the row
// order of every weekday-keyed aggregate.
func WeekdayNames() [7]string {
	return [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
}

// SeasonOf maps a calendar month to its meteorological season.
func SeasonOf(month time.Month) Season {
	switch month {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonAutumn
	}
}

// WeekTypeOf classifies a weekday; Saturday and Sunday count as weekend.
func WeekTypeOf(d time.Weekday) WeekType {
	if d == time.Saturday || d == time.Sunday {
		return WeekTypeWeekend
	}
	return WeekTypeWeekday
}

// ValidSeason reports whether s is one of the four known seasons.
func ValidSeason(s Season) bool {
	switch s {
	case SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn:
		return true
	}
	return false
}
