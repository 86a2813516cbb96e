package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/kajoty/playlist-insights/internal/domain"
)

// StationAll is the sentinel that disables the station predicate.
const StationAll = "all"

// ErrInvalidRange rejects a date range whose start lies after its end. That
// is a caller mistake, not a recoverable condition.
var ErrInvalidRange = errors.New("invalid date range: start after end")

// DateRange is an inclusive calendar-date interval. Comparison ignores the
// time of day on both ends.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange validates and builds an inclusive range. Both bounds are
// truncated to their calendar date.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start = truncateToDate(start)
	end = truncateToDate(end)
	if start.After(end) {
		return DateRange{}, fmt.Errorf("%w (%s > %s)",
			ErrInvalidRange, start.Format(dateLayout), end.Format(dateLayout))
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether t's calendar date falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := truncateToDate(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Filter holds exact-match predicates over an event collection. An empty
// field (or StationAll for Station) skips that predicate, so predicates
// compose in any order with the same result set.
type Filter struct {
	Station string
	Artist  string
	Title   string
}

func (f Filter) matches(e domain.Event) bool {
	if f.Station != "" && f.Station != StationAll && e.Station != f.Station {
		return false
	}
	if f.Artist != "" && e.Artist != f.Artist {
		return false
	}
	if f.Title != "" && e.Title != f.Title {
		return false
	}
	return true
}

// FilterEvents applies the equality predicates, preserving input order. The
// filter is stable and idempotent.
func FilterEvents(events []domain.Event, f Filter) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// FilterRange keeps events whose PlayedDate falls inside r, preserving input
// order. Events without a parseable date cannot be placed in any range and
// are dropped here.
func FilterRange(events []domain.Event, r DateRange) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if e.HasDate() && r.Contains(e.PlayedDate) {
			out = append(out, e)
		}
	}
	return out
}

// FilterByStationAndRange composes the station predicate with an inclusive
// date range, validating the range first.
func FilterByStationAndRange(events []domain.Event, station string, start, end time.Time) ([]domain.Event, error) {
	r, err := NewDateRange(start, end)
	if err != nil {
		return nil, err
	}
	return FilterEvents(FilterRange(events, r), Filter{Station: station}), nil
}
