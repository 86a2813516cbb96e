package analytics

import (
	"sort"
	"time"

	"github.com/kajoty/playlist-insights/internal/domain"
)

// Stations lists the distinct stations present, sorted, empties dropped.
// These feed the presentation layer's selection controls.
func Stations(events []domain.Event) []string {
	return distinct(events, func(e domain.Event) string { return e.Station })
}

// Artists lists the distinct artists present, sorted, empties dropped.
func Artists(events []domain.Event) []string {
	return distinct(events, func(e domain.Event) string { return e.Artist })
}

// Titles lists the distinct titles present, sorted, empties dropped.
func Titles(events []domain.Event) []string {
	return distinct(events, func(e domain.Event) string { return e.Title })
}

func distinct(events []domain.Event, field func(domain.Event) string) []string {
	seen := make(map[string]bool, 64)
	var out []string
	for _, e := range events {
		v := field(e)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// DateBounds returns the earliest and latest PlayedDate in the collection.
// ok is false when no row carries a parseable date.
func DateBounds(events []domain.Event) (min, max time.Time, ok bool) {
	for _, e := range events {
		if !e.HasDate() {
			continue
		}
		if !ok {
			min, max, ok = e.PlayedDate, e.PlayedDate, true
			continue
		}
		if e.PlayedDate.Before(min) {
			min = e.PlayedDate
		}
		if e.PlayedDate.After(max) {
			max = e.PlayedDate
		}
	}
	return min, max, ok
}
