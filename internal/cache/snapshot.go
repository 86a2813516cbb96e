// Package cache bounds staleness of the loaded collection. The engine itself
// is pure; how fresh its input is belongs here, behind a TTL.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kajoty/playlist-insights/internal/domain"
)

// Snapshot is one fully-formed normalized collection. Consumers always see a
// whole snapshot or none: it is stored as a single value, so a refresh is an
// atomic swap and no reader ever observes a partially loaded collection.
type Snapshot struct {
	Events   []domain.Event `json:"events"`
	LoadedAt time.Time      `json:"loaded_at"`
}

// SnapshotCache keeps the latest snapshot in Redis under one key with a TTL.
type SnapshotCache struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// NewSnapshotCache creates a cache over the given client. Results served
// from it may be up to ttl stale; that is the contract, not a bug.
func NewSnapshotCache(rdb *redis.Client, key string, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{rdb: rdb, key: key, ttl: ttl}
}

// Get returns the cached snapshot. A miss (expired or never set) is reported
// separately from a failure.
func (c *SnapshotCache) Get(ctx context.Context) (*Snapshot, bool, error) {
	data, err := c.rdb.Get(ctx, c.key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, true, nil
}

// Set stores the snapshot, replacing any previous one in a single write.
func (c *SnapshotCache) Set(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.rdb.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}
