package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// GoCacheStore is an in-memory Store backed by go-cache. Values are written
// with NoExpiration: snapshot staleness is judged against the snapshot's own
// timestamp, never by eviction.
type GoCacheStore struct {
	cache *gocache.Cache
}

// NewGoCacheStore creates a new in-memory store.
// cleanupInterval bounds the janitor sweep; it never removes snapshot
// entries since those are written without expiration.
func NewGoCacheStore(cleanupInterval time.Duration) *GoCacheStore {
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &GoCacheStore{
		cache: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

// Get retrieves the value for a key
func (s *GoCacheStore) Get(key string) ([]byte, bool) {
	value, found := s.cache.Get(key)
	if !found {
		return nil, false
	}
	data, ok := value.([]byte)
	if !ok {
		return nil, false
	}
	return data, true
}

// Set stores a value for a key, replacing any previous value
func (s *GoCacheStore) Set(key string, data []byte) error {
	s.cache.Set(key, data, gocache.NoExpiration)
	return nil
}

// ItemCount returns the number of items in the store
func (s *GoCacheStore) ItemCount() int {
	return s.cache.ItemCount()
}

// Clear removes all items from the store
func (s *GoCacheStore) Clear() {
	s.cache.Flush()
}
