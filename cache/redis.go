package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cryptoswap/swap-proxy/config"
)

// RedisStore is a Store backed by Redis, for deployments running several
// replicas behind one snapshot. Keys are written without expiration so a
// stale snapshot survives upstream outages.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	timeout   time.Duration
}

// NewRedisStore creates a Redis-backed store and verifies connectivity
func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		timeout:   2 * time.Second,
	}, nil
}

// Get retrieves the value for a key
func (s *RedisStore) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("RedisStore: get %s failed: %v", key, err)
		}
		return nil, false
	}
	return data, true
}

// Set stores a value for a key, replacing any previous value
func (s *RedisStore) Set(key string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	return s.client.Set(ctx, s.keyPrefix+key, data, 0).Err()
}

// ItemCount returns the number of keys under this store's prefix
func (s *RedisStore) ItemCount() int {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	keys, err := s.client.Keys(ctx, s.keyPrefix+"*").Result()
	if err != nil {
		return 0
	}
	return len(keys)
}

// Close releases the underlying client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
