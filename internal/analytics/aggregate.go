package analytics

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/kajoty/playlist-insights/internal/domain"
)

var (
	// ErrInvalidMonth rejects a month outside [1,12].
	ErrInvalidMonth = errors.New("invalid month")
	// ErrInvalidSeason rejects a season that is not one of the four known ones.
	ErrInvalidSeason = errors.New("invalid season")
)

// KeyFunc extracts a grouping key from an event. A false second return
// excludes the event from the aggregate at hand; it stays part of the
// collection for every other purpose.
type KeyFunc func(domain.Event) (key string, ok bool)

// KeyCount is one grouping key with its occurrence count.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// ByTitle keys by song title, excluding rows without one.
func ByTitle(e domain.Event) (string, bool) { return e.Title, e.Title != "" }

// ByArtist keys by artist, excluding rows without one.
func ByArtist(e domain.Event) (string, bool) { return e.Artist, e.Artist != "" }

// ByStation keys by station, excluding rows without one.
func ByStation(e domain.Event) (string, bool) { return e.Station, e.Station != "" }

// ByHour keys by broadcast hour, zero-padded so lexical key order matches
// numeric order. Rows without a timestamp are excluded.
func ByHour(e domain.Event) (string, bool) {
	if e.Hour < 0 {
		return "", false
	}
	return fmt.Sprintf("%02d", e.Hour), true
}

var playedTimePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// ByPlayedTime keys by the cleaned HH:MM prefix of the raw clock string.
// Values whose first five characters do not match HH:MM are excluded from
// this aggregate only.
func ByPlayedTime(e domain.Event) (string, bool) {
	if len(e.PlayedTime) < 5 {
		return "", false
	}
	prefix := e.PlayedTime[:5]
	if !playedTimePattern.MatchString(prefix) {
		return "", false
	}
	return prefix, true
}

// GroupCount counts events per key. The result is ordered by first
// encounter, which makes it deterministic for a given input ordering; use
// SortByKey when key order is wanted instead.
func GroupCount(events []domain.Event, key KeyFunc) []KeyCount {
	counts := make(map[string]int, 64)
	order := make([]string, 0, 64)
	for _, e := range events {
		k, ok := key(e)
		if !ok {
			continue
		}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	out := make([]KeyCount, 0, len(order))
	for _, k := range order {
		out = append(out, KeyCount{Key: k, Count: counts[k]})
	}
	return out
}

// SortByKey returns a copy ordered by key ascending.
func SortByKey(kcs []KeyCount) []KeyCount {
	out := make([]KeyCount, len(kcs))
	copy(out, kcs)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Ranked returns all keys ordered by count descending. Count ties keep
// first-encountered key order, so repeated calls over the same input yield
// the same ranking.
func Ranked(events []domain.Event, key KeyFunc) []KeyCount {
	ranked := GroupCount(events, key)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	return ranked
}

// TopN truncates the Ranked ordering to at most n entries.
func TopN(events []domain.Event, key KeyFunc, n int) []KeyCount {
	ranked := Ranked(events, key)
	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// HeatmapMatrix is the weekday-by-hour play count grid. Rows follow
// domain.WeekdayNames() order, columns are hours 0 through 23. Every one of
// the 168 cells is present, zero when no plays fall in it, so downstream
// grids never deal with missing cells.
type HeatmapMatrix struct {
	Weekdays [7]string  `json:"weekdays"`
	Counts   [7][24]int `json:"counts"`
}

// WeekdayHourMatrix builds the full 7x24 grid for the given events. Rows
// without a timestamp are skipped.
func WeekdayHourMatrix(events []domain.Event) HeatmapMatrix {
	m := HeatmapMatrix{Weekdays: domain.WeekdayNames()}
	rowIdx := make(map[string]int, 7)
	for i, name := range m.Weekdays {
		rowIdx[name] = i
	}
	for _, e := range events {
		if !e.HasPlayedAt() {
			continue
		}
		row, ok := rowIdx[e.Weekday]
		if !ok {
			continue
		}
		m.Counts[row][e.Hour]++
	}
	return m
}

// HourlyDistribution counts plays per hour of day, ordered by hour.
func HourlyDistribution(events []domain.Event) []KeyCount {
	return SortByKey(GroupCount(events, ByHour))
}

// PlayedTimeHistogram counts plays per cleaned HH:MM value, ordered by time.
func PlayedTimeHistogram(events []domain.Event) []KeyCount {
	return SortByKey(GroupCount(events, ByPlayedTime))
}

// StationDistribution ranks stations by play count descending.
func StationDistribution(events []domain.Event) []KeyCount {
	return Ranked(events, ByStation)
}

// TopTitlesForMonth ranks titles among plays in the given calendar month
// (any year).
func TopTitlesForMonth(events []domain.Event, month, n int) ([]KeyCount, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	sub := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if e.HasPlayedAt() && e.Month == month {
			sub = append(sub, e)
		}
	}
	return TopN(sub, ByTitle, n), nil
}

// TopArtistsForSeason ranks artists among plays in the given season.
func TopArtistsForSeason(events []domain.Event, season domain.Season, n int) ([]KeyCount, error) {
	if !domain.ValidSeason(season) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeason, season)
	}
	return TopN(FilterBySeason(events, season), ByArtist, n), nil
}

// FilterBySeason keeps events whose derived season matches, preserving order.
func FilterBySeason(events []domain.Event, season domain.Season) []domain.Event {
	sub := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if e.Season == season {
			sub = append(sub, e)
		}
	}
	return sub
}

// WeekTypeTop is the top titles for one side of the weekday/weekend split.
type WeekTypeTop struct {
	WeekType domain.WeekType `json:"week_type"`
	Titles   []KeyCount      `json:"titles"`
}

// TopTitlesByWeekType ranks titles separately for weekdays and weekends,
// always in that order.
func TopTitlesByWeekType(events []domain.Event, n int) []WeekTypeTop {
	out := make([]WeekTypeTop, 0, 2)
	for _, wt := range []domain.WeekType{domain.WeekTypeWeekday, domain.WeekTypeWeekend} {
		sub := make([]domain.Event, 0, len(events))
		for _, e := range events {
			if e.WeekType == wt {
				sub = append(sub, e)
			}
		}
		out = append(out, WeekTypeTop{WeekType: wt, Titles: TopN(sub, ByTitle, n)})
	}
	return out
}

// YearTop holds the rankings of a single broadcast year.
type YearTop struct {
	Year    int        `json:"year"`
	Artists []KeyCount `json:"artists"`
	Titles  []KeyCount `json:"titles"`
}

// TopOfYear ranks artists and titles among plays whose timestamp falls in
// the given year.
func TopOfYear(events []domain.Event, year, n int) YearTop {
	sub := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if e.HasPlayedAt() && e.PlayedAt.Year() == year {
			sub = append(sub, e)
		}
	}
	return YearTop{
		Year:    year,
		Artists: TopN(sub, ByArtist, n),
		Titles:  TopN(sub, ByTitle, n),
	}
}

// Years lists the distinct broadcast years present, newest first.
func Years(events []domain.Event) []int {
	seen := make(map[int]bool)
	var years []int
	for _, e := range events {
		if !e.HasPlayedAt() {
			continue
		}
		y := e.PlayedAt.Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
