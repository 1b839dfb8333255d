package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cryptoswap/swap-proxy/config"
)

const snapshotKey = "price_snapshot"

// SnapshotCache owns the current price snapshot. It answers freshness
// against a fixed TTL, allows stale reads, and replaces the snapshot
// atomically on Put. There is no transition back to empty: a snapshot, once
// stored, is only ever overwritten by a newer successful fetch.
type SnapshotCache struct {
	mu    sync.RWMutex
	store Store
	ttl   time.Duration

	// current mirrors the store for cheap reads; the store is the durable
	// copy when Redis is enabled
	current *PriceSnapshot
}

// NewSnapshotCache creates a snapshot cache over the given store. If the
// store already holds a snapshot (a Redis store surviving a restart), it is
// adopted as the current, possibly stale, snapshot.
func NewSnapshotCache(store Store, ttl time.Duration) *SnapshotCache {
	c := &SnapshotCache{
		store: store,
		ttl:   ttl,
	}

	if data, ok := store.Get(snapshotKey); ok {
		var snapshot PriceSnapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			log.Printf("Cache: discarding unreadable stored snapshot: %v", err)
		} else {
			c.current = &snapshot
		}
	}

	return c
}

// NewServiceFromConfig builds the snapshot cache with the store selected by
// configuration: Redis when enabled, the in-memory go-cache store otherwise
func NewServiceFromConfig(cfg config.CacheConfig, ttl time.Duration) (*SnapshotCache, error) {
	if cfg.Redis.Enabled {
		store, err := NewRedisStore(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Address, err)
		}
		log.Printf("Cache: using redis store at %s", cfg.Redis.Address)
		return NewSnapshotCache(store, ttl), nil
	}
	return NewSnapshotCache(NewGoCacheStore(cfg.GoCache.CleanupInterval), ttl), nil
}

// Start implements core.Interface
func (c *SnapshotCache) Start(ctx context.Context) error {
	if c.store == nil {
		return fmt.Errorf("snapshot cache has no store")
	}
	return nil
}

// Stop implements core.Interface
func (c *SnapshotCache) Stop() {
	if closer, ok := c.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Printf("Cache: error closing store: %v", err)
		}
	}
}

// Put atomically replaces the current snapshot. Last writer wins; there is
// no merging of partial snapshots.
func (c *SnapshotCache) Put(snapshot PriceSnapshot) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("Cache: failed to encode snapshot: %v", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Set(snapshotKey, data); err != nil {
		log.Printf("Cache: failed to persist snapshot: %v", err)
	}
	c.current = &snapshot
}

// Get returns the current snapshot regardless of freshness. ok is false only
// when no snapshot was ever stored.
func (c *SnapshotCache) Get() (PriceSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return PriceSnapshot{}, false
	}
	return *c.current, true
}

// IsFresh reports whether a snapshot exists and its age at the given time is
// below the TTL
func (c *SnapshotCache) IsFresh(now time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return false
	}
	return now.Sub(c.current.CapturedAt) < c.ttl
}

// TTL returns the configured time-to-live
func (c *SnapshotCache) TTL() time.Duration {
	return c.ttl
}

// ItemCount returns the number of items in the backing store, for metrics
func (c *SnapshotCache) ItemCount() int {
	return c.store.ItemCount()
}
