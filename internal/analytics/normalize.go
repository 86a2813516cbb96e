// Package analytics is the pure aggregation engine over normalized playlist
// events. Every function here is a transformation of its input: no I/O, no
// shared state, safe to call concurrently over the same collection.
package analytics

import (
	"strings"
	"time"

	"github.com/kajoty/playlist-insights/internal/domain"
)

const dateLayout = "2006-01-02"

// Timestamp layouts seen in playlist exports. The Postgres text form comes
// first because that is what the store hands us.
var playedAtLayouts = []string{
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// Normalize converts raw rows into events, parsing the temporal fields and
// deriving the calendar attributes (month, weekday, hour, season, week type).
// One bad row never fails the batch: fields that do not parse stay absent,
// and the output keeps the input's cardinality and order.
func Normalize(raw []domain.RawEvent) []domain.Event {
	events := make([]domain.Event, 0, len(raw))
	for _, r := range raw {
		events = append(events, normalizeOne(r))
	}
	return events
}

func normalizeOne(r domain.RawEvent) domain.Event {
	e := domain.Event{
		Station:    r.Station,
		Artist:     r.Artist,
		Title:      r.Title,
		PlayedTime: r.PlayedTime,
		Hour:       -1,
	}
	e.PlayedDate = parseDate(r.PlayedDate)
	if at, ok := parsePlayedAt(r.PlayedAt); ok {
		e.PlayedAt = at
		e.Month = int(at.Month())
		e.Weekday = at.Weekday().String()
		e.Hour = at.Hour()
		e.Season = domain.SeasonOf(at.Month())
		e.WeekType = domain.WeekTypeOf(at.Weekday())
	}
	return e
}

// parseDate reads a bare calendar date, also accepting a date with a trailing
// time component as some exports store played_date as a full timestamp.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return d
}

func parsePlayedAt(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range playedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
