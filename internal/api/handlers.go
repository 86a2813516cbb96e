// Package api is the HTTP presentation surface over the analytics engine.
// It returns plain structured JSON only; rendering belongs to the client.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/kajoty/playlist-insights/internal/analytics"
	"github.com/kajoty/playlist-insights/internal/cache"
	"github.com/kajoty/playlist-insights/internal/domain"
	"github.com/kajoty/playlist-insights/internal/service"
)

const dateLayout = "2006-01-02"

// SnapshotProvider hands handlers the current normalized collection.
type SnapshotProvider interface {
	Current(ctx context.Context) (*cache.Snapshot, error)
}

// Handlers wires the analytics engine to the HTTP surface.
type Handlers struct {
	loader   SnapshotProvider
	pageSize int
	log      zerolog.Logger
}

// NewHandlers creates the handler set. pageSize falls back to the engine's
// default when non-positive.
func NewHandlers(loader SnapshotProvider, pageSize int, log zerolog.Logger) *Handlers {
	if pageSize <= 0 {
		pageSize = analytics.DefaultPageSize
	}
	return &Handlers{loader: loader, pageSize: pageSize, log: log}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// snapshot loads the current collection and writes the failure response
// itself; the bool tells the handler whether to continue.
func (h *Handlers) snapshot(w http.ResponseWriter, r *http.Request) (*cache.Snapshot, bool) {
	snap, err := h.loader.Current(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			respondError(w, http.StatusServiceUnavailable, "no playlist data available")
		} else {
			h.log.Error().Err(err).Msg("snapshot load failed")
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return nil, false
	}
	return snap, true
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

// GetOptions returns the selection sources for client controls: distinct
// stations, artists and titles, the date bounds, and the available years.
func (h *Handlers) GetOptions(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	minDate, maxDate, hasDates := analytics.DateBounds(snap.Events)
	opts := map[string]interface{}{
		"stations":  analytics.Stations(snap.Events),
		"artists":   analytics.Artists(snap.Events),
		"titles":    analytics.Titles(snap.Events),
		"years":     analytics.Years(snap.Events),
		"loaded_at": snap.LoadedAt,
	}
	if hasDates {
		opts["min_date"] = minDate.Format(dateLayout)
		opts["max_date"] = maxDate.Format(dateLayout)
	}
	respondJSON(w, http.StatusOK, opts)
}

// parseRangeParams reads start/end query parameters, falling back to the
// collection's full date bounds when a side is missing.
func parseRangeParams(r *http.Request, events []domain.Event) (start, end time.Time, err error) {
	minDate, maxDate, _ := analytics.DateBounds(events)
	start, end = minDate, maxDate
	if v := r.URL.Query().Get("start"); v != "" {
		start, err = time.Parse(dateLayout, v)
		if err != nil {
			return start, end, errors.New("invalid start date, want YYYY-MM-DD")
		}
	}
	if v := r.URL.Query().Get("end"); v != "" {
		end, err = time.Parse(dateLayout, v)
		if err != nil {
			return start, end, errors.New("invalid end date, want YYYY-MM-DD")
		}
	}
	return start, end, nil
}

// GetOverview returns the filtered page slice with the overview aggregates:
// total count, top artists and titles, station distribution, and the
// cleaned played-time histogram.
func (h *Handlers) GetOverview(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	station := r.URL.Query().Get("station")
	if station == "" {
		station = analytics.StationAll
	}
	start, end, err := parseRangeParams(r, snap.Events)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	pageNum := 1
	if v := r.URL.Query().Get("page"); v != "" {
		pageNum, err = strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid page number")
			return
		}
	}

	filtered, err := analytics.FilterByStationAndRange(snap.Events, station, start, end)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := analytics.Paginate(filtered, h.pageSize, pageNum)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"station":      station,
		"start":        truncFormat(start),
		"end":          truncFormat(end),
		"total":        len(filtered),
		"page":         page,
		"top_artists":  analytics.TopN(filtered, analytics.ByArtist, 10),
		"top_titles":   analytics.TopN(filtered, analytics.ByTitle, 10),
		"stations":     analytics.StationDistribution(filtered),
		"played_times": analytics.PlayedTimeHistogram(filtered),
	})
}

func truncFormat(t time.Time) string { return t.Format(dateLayout) }

// GetSeasonal returns the seasonal cross-sections: top titles for a month,
// top artists for a season, the weekday/weekend split, the hourly
// distribution, and the season-filtered broadcast heatmap.
func (h *Handlers) GetSeasonal(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	month := int(time.Now().Month())
	if v := r.URL.Query().Get("month"); v != "" {
		var err error
		month, err = strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid month")
			return
		}
	}
	monthTitles, err := analytics.TopTitlesForMonth(snap.Events, month, 10)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	season := domain.Season(r.URL.Query().Get("season"))
	if season == "" {
		season = domain.SeasonOf(time.Month(month))
	}
	seasonArtists, err := analytics.TopArtistsForSeason(snap.Events, season, 10)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"month":              month,
		"season":             season,
		"top_titles_month":   monthTitles,
		"top_artists_season": seasonArtists,
		"week_type_top":      analytics.TopTitlesByWeekType(snap.Events, 5),
		"hourly":             analytics.HourlyDistribution(snap.Events),
		"heatmap":            analytics.WeekdayHourMatrix(analytics.FilterBySeason(snap.Events, season)),
	})
}

// GetSongProfile returns the profile of a single title over a date range.
func (h *Handlers) GetSongProfile(w http.ResponseWriter, r *http.Request) {
	h.profile(w, r, analytics.FieldTitle, r.URL.Query().Get("title"))
}

// GetArtistProfile returns the profile of a single artist over a date range.
func (h *Handlers) GetArtistProfile(w http.ResponseWriter, r *http.Request) {
	h.profile(w, r, analytics.FieldArtist, r.URL.Query().Get("artist"))
}

func (h *Handlers) profile(w http.ResponseWriter, r *http.Request, field analytics.EntityField, value string) {
	if value == "" {
		respondError(w, http.StatusBadRequest, string(field)+" parameter is required")
		return
	}
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	start, end, err := parseRangeParams(r, snap.Events)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := analytics.BuildProfile(snap.Events, field, value, start, end)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"empty":   p.IsEmpty(),
		"profile": p,
	})
}

// GetTopOfYear returns the top-20 artists and titles of one broadcast year.
func (h *Handlers) GetTopOfYear(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	years := analytics.Years(snap.Events)
	year := 0
	if len(years) > 0 {
		year = years[0]
	}
	if v := r.URL.Query().Get("year"); v != "" {
		var err error
		year, err = strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid year")
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"years": years,
		"top":   analytics.TopOfYear(snap.Events, year, 20),
	})
}
