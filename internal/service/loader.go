// Package service orchestrates the load cycle: cache, store, normalizer.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kajoty/playlist-insights/internal/analytics"
	"github.com/kajoty/playlist-insights/internal/cache"
	"github.com/kajoty/playlist-insights/internal/domain"
	"github.com/kajoty/playlist-insights/internal/pkg/distlock"
	"github.com/kajoty/playlist-insights/internal/pkg/metrics"
)

// refreshWait is how long a replica that lost the refresh race waits before
// re-checking the cache for the winner's snapshot.
const refreshWait = 150 * time.Millisecond

// ErrNoData signals that the upstream store produced no usable events,
// whether by failing or by returning an empty batch. It is the explicit
// "no data available" condition of the analytics API, distinct from a valid
// query that merely matched nothing.
var ErrNoData = errors.New("no playlist data available")

// EventSource is the upstream store contract: a complete batch or an error,
// never a partial one.
type EventSource interface {
	FetchAll(ctx context.Context) ([]domain.RawEvent, error)
}

// SnapshotStore is the cache side of the load cycle.
type SnapshotStore interface {
	Get(ctx context.Context) (*cache.Snapshot, bool, error)
	Set(ctx context.Context, snap *cache.Snapshot) error
}

// Loader serves the current normalized collection, going to the store only
// when the cached snapshot has expired. A degraded cache never fails a load:
// read and write problems are logged and the store is consulted directly.
type Loader struct {
	source EventSource
	cache  SnapshotStore
	lock   distlock.DistLock
	log    zerolog.Logger
}

// NewLoader creates a loader. cache may be nil to disable caching.
func NewLoader(source EventSource, c SnapshotStore, log zerolog.Logger) *Loader {
	return &Loader{source: source, cache: c, log: log}
}

// WithRefreshLock guards cache-miss refreshes with a distributed lock so
// replicas hitting an expired snapshot together do not all query the store.
func (l *Loader) WithRefreshLock(lock distlock.DistLock) *Loader {
	l.lock = lock
	return l
}

// Current returns the freshest available snapshot. The loader never retries
// the store; retry policy, if any, belongs to whoever calls it.
func (l *Loader) Current(ctx context.Context) (*cache.Snapshot, error) {
	if l.cache != nil {
		snap, ok, err := l.cache.Get(ctx)
		switch {
		case err != nil:
			l.log.Warn().Err(err).Msg("snapshot cache read failed, loading from store")
		case ok:
			metrics.SnapshotLoads.WithLabelValues("cache").Inc()
			return snap, nil
		}

		// Expired snapshot: let one replica refresh while the rest wait
		// for its write. Losing the race and then missing again is fine,
		// the store load below is the fallback either way.
		if l.lock != nil {
			held, err := l.lock.Acquire(ctx)
			if err != nil {
				l.log.Warn().Err(err).Msg("refresh lock unavailable, loading from store")
			} else if held {
				defer l.lock.Release(ctx)
			} else {
				select {
				case <-time.After(refreshWait):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
				if snap, ok, err := l.cache.Get(ctx); err == nil && ok {
					metrics.SnapshotLoads.WithLabelValues("cache").Inc()
					return snap, nil
				}
			}
		}
	}

	raw, err := l.source.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}
	if len(raw) == 0 {
		return nil, ErrNoData
	}

	snap := &cache.Snapshot{
		Events:   analytics.Normalize(raw),
		LoadedAt: time.Now().UTC(),
	}
	metrics.SnapshotLoads.WithLabelValues("store").Inc()
	metrics.SnapshotEvents.Set(float64(len(snap.Events)))

	if l.cache != nil {
		if err := l.cache.Set(ctx, snap); err != nil {
			l.log.Warn().Err(err).Msg("snapshot cache write failed")
		}
	}
	l.log.Info().Int("events", len(snap.Events)).Msg("loaded playlist snapshot from store")
	return snap, nil
}
