// Package postgres reads the materialized playlist table. It is the single
// upstream data source of the analytics engine: one query, read-only, in
// played_at descending order.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kajoty/playlist-insights/internal/domain"
)

// PlaylistRepo fetches playlist rows from PostgreSQL.
type PlaylistRepo struct{ db *sql.DB }

// NewPlaylistRepo creates a Postgres-backed playlist repository.
func NewPlaylistRepo(db *sql.DB) *PlaylistRepo { return &PlaylistRepo{db: db} }

// Temporal columns come back as text: parse tolerance lives in the
// normalizer, not in the driver.
const fetchQuery = `
	SELECT station, artist, title,
	       played_date::text, played_time::text, played_at::text
	FROM ndr_playlist
	ORDER BY played_at DESC
`

// FetchAll returns the full event batch. The batch is all-or-nothing: a scan
// or iteration error fails the whole call so callers never see a partially
// loaded collection.
func (r *PlaylistRepo) FetchAll(ctx context.Context) ([]domain.RawEvent, error) {
	rows, err := r.db.QueryContext(ctx, fetchQuery)
	if err != nil {
		return nil, fmt.Errorf("query playlist: %w", err)
	}
	defer rows.Close()

	var out []domain.RawEvent
	for rows.Next() {
		var station, artist, title, playedDate, playedTime, playedAt sql.NullString
		if err := rows.Scan(&station, &artist, &title, &playedDate, &playedTime, &playedAt); err != nil {
			return nil, fmt.Errorf("scan playlist row: %w", err)
		}
		out = append(out, domain.RawEvent{
			Station:    station.String,
			Artist:     artist.String,
			Title:      title.String,
			PlayedDate: playedDate.String,
			PlayedTime: playedTime.String,
			PlayedAt:   playedAt.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist rows: %w", err)
	}
	return out, nil
}
