package ratelimit

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options holds the Redis connection settings for a shared counter store.
type Options struct {
	// Redis server(cluster) address.
	Address string
	// Password required when connecting to the Redis server.
	Password string
	// DB to connect to.
	DB int
	// TLS config.
	TLSConfig *tls.Config
}

// DefaultOptions returns options for a local unauthenticated Redis.
func DefaultOptions() Options {
	return Options{
		Address:  "localhost:6379",
		Password: "", // no password set
		DB:       0,  // use default DB
	}
}

// RedisStore is a CounterStore backed by a shared Redis instance, valid for
// multi-instance deployments. The key's TTL substitutes for explicit window
// tracking: the window opens when the key is created and closes when Redis
// expires it.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore opens a Redis connection and returns a store wrapping it.
func NewRedisStore(options Options) *RedisStore {
	client := redis.NewClient(&redis.Options{
		TLSConfig: options.TLSConfig,
		Addr:      options.Address,
		Password:  options.Password,
		DB:        options.DB,
	})
	return &RedisStore{client: client}
}

// Incr increments key's counter and returns the new count. INCR is atomic on
// the server side; the TTL is set only when the increment created the key, so
// the window length is fixed from the first call.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// Ping tests connectivity to the Redis server.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Interface guard for RedisStore
var _ CounterStore = &RedisStore{}
