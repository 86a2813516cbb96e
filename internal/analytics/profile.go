package analytics

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/kajoty/playlist-insights/internal/domain"
)

// EntityField selects which event field a profile is built over.
type EntityField string

const (
	FieldTitle  EntityField = "title"
	FieldArtist EntityField = "artist"
)

// ErrUnknownField rejects a profile request over a field the engine does not
// group by.
var ErrUnknownField = errors.New("unknown entity field")

// TitleSummary is one row of an artist profile's per-title table.
type TitleSummary struct {
	Title      string    `json:"title"`
	Plays      int       `json:"plays"`
	FirstDate  time.Time `json:"first_date"`
	LastDate   time.Time `json:"last_date"`
	TopStation string    `json:"top_station"`
}

// DayCount is one point of a daily time series.
type DayCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// StationPivot is the zero-filled date-by-station count table. Dates ascend
// and stations are sorted so columns stay stable across queries;
// Counts[i][j] belongs to Dates[i] and Stations[j]. Unlike the sparse daily
// series, every present (date, station) combination is filled because
// consumers stack the station series on shared axes.
type StationPivot struct {
	Dates    []time.Time `json:"dates"`
	Stations []string    `json:"stations"`
	Counts   [][]int     `json:"counts"`
}

// Profile is the summary and time series of a single song or artist over a
// date range.
type Profile struct {
	Field           EntityField    `json:"field"`
	Value           string         `json:"value"`
	PlayCount       int            `json:"play_count"`
	FirstDate       time.Time      `json:"first_date"`
	LastDate        time.Time      `json:"last_date"`
	DominantStation string         `json:"dominant_station"`
	Titles          []TitleSummary `json:"titles"`
	Daily           []DayCount     `json:"daily"`
	ByStation       StationPivot   `json:"by_station"`
	Hourly          []KeyCount     `json:"hourly"`
	Heatmap         HeatmapMatrix  `json:"heatmap"`
}

// IsEmpty reports whether no events matched. An empty profile is a valid
// result, not a failure; callers render a "no data" state from it.
func (p Profile) IsEmpty() bool { return p.PlayCount == 0 }

// BuildProfile filters the collection to exact matches on the entity field
// inside the inclusive date range and derives the profile. An invalid range
// or unknown field is a caller error; a query that matches nothing is not.
func BuildProfile(events []domain.Event, field EntityField, value string, start, end time.Time) (Profile, error) {
	r, err := NewDateRange(start, end)
	if err != nil {
		return Profile{}, err
	}
	var f Filter
	switch field {
	case FieldTitle:
		f.Title = value
	case FieldArtist:
		f.Artist = value
	default:
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	matched := FilterEvents(FilterRange(events, r), f)
	p := Profile{
		Field:     field,
		Value:     value,
		PlayCount: len(matched),
		Heatmap:   WeekdayHourMatrix(nil),
	}
	if len(matched) == 0 {
		return p, nil
	}

	p.FirstDate, p.LastDate = dateBoundsOf(matched)
	if top := TopN(matched, ByStation, 1); len(top) > 0 {
		p.DominantStation = top[0].Key
	}
	p.Titles = titleSummaries(matched)
	p.Daily = dailySeries(matched)
	p.ByStation = stationPivot(matched)
	p.Hourly = HourlyDistribution(matched)
	p.Heatmap = WeekdayHourMatrix(matched)
	return p, nil
}

func dateBoundsOf(events []domain.Event) (first, last time.Time) {
	for _, e := range events {
		if first.IsZero() || e.PlayedDate.Before(first) {
			first = e.PlayedDate
		}
		if last.IsZero() || e.PlayedDate.After(last) {
			last = e.PlayedDate
		}
	}
	return first, last
}

// titleSummaries aggregates per distinct title: play count, first and last
// date, and the station airing it most often. The dominant station tie-break
// is count first, then first-encountered station, matching TopN's rule.
// Rows are ordered by plays descending with the same tie rule.
func titleSummaries(events []domain.Event) []TitleSummary {
	byTitle := make(map[string][]domain.Event)
	order := make([]string, 0, 16)
	for _, e := range events {
		if e.Title == "" {
			continue
		}
		if _, seen := byTitle[e.Title]; !seen {
			order = append(order, e.Title)
		}
		byTitle[e.Title] = append(byTitle[e.Title], e)
	}

	out := make([]TitleSummary, 0, len(order))
	for _, title := range order {
		group := byTitle[title]
		s := TitleSummary{Title: title, Plays: len(group)}
		s.FirstDate, s.LastDate = dateBoundsOf(group)
		if top := TopN(group, ByStation, 1); len(top) > 0 {
			s.TopStation = top[0].Key
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Plays > out[j].Plays })
	return out
}

// dailySeries counts plays per calendar date, ascending. Days with zero
// plays are not filled in: the series is deliberately sparse.
func dailySeries(events []domain.Event) []DayCount {
	counts := make(map[time.Time]int)
	for _, e := range events {
		counts[e.PlayedDate]++
	}
	out := make([]DayCount, 0, len(counts))
	for d, c := range counts {
		out = append(out, DayCount{Date: d, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// stationPivot builds the zero-filled date-by-station table.
func stationPivot(events []domain.Event) StationPivot {
	type cell struct {
		date    time.Time
		station string
	}
	counts := make(map[cell]int)
	dateSet := make(map[time.Time]bool)
	stationSet := make(map[string]bool)
	for _, e := range events {
		if e.Station == "" {
			continue
		}
		counts[cell{e.PlayedDate, e.Station}]++
		dateSet[e.PlayedDate] = true
		stationSet[e.Station] = true
	}

	p := StationPivot{
		Dates:    make([]time.Time, 0, len(dateSet)),
		Stations: make([]string, 0, len(stationSet)),
	}
	for d := range dateSet {
		p.Dates = append(p.Dates, d)
	}
	sort.Slice(p.Dates, func(i, j int) bool { return p.Dates[i].Before(p.Dates[j]) })
	for s := range stationSet {
		p.Stations = append(p.Stations, s)
	}
	sort.Strings(p.Stations)

	p.Counts = make([][]int, len(p.Dates))
	for i, d := range p.Dates {
		row := make([]int, len(p.Stations))
		for j, s := range p.Stations {
			row[j] = counts[cell{d, s}]
		}
		p.Counts[i] = row
	}
	return p
}
