package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DefaultRedisPrefix is prepended to every key stored in Redis.
const DefaultRedisPrefix = "snowball:"

// Redis is a Store backed by a Redis server. Values never expire.
type Redis struct {
	rdb    redis.UniversalClient
	prefix string
	log    zerolog.Logger
}

// NewRedis wraps a client. Keys are stored as prefix+key.
func NewRedis(rdb redis.UniversalClient, prefix string, log zerolog.Logger) *Redis {
	return &Redis{rdb: rdb, prefix: prefix, log: log.With().Str("component", "kv.redis").Logger()}
}

// OpenRedis connects to the server at rawURL, such as redis://:secret@localhost:6379/0.
func OpenRedis(ctx context.Context, rawURL string, log zerolog.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url %s: %w", Redact(rawURL), err)
	}
	rdb := redis.NewClient(opts)

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedis(rdb, DefaultRedisPrefix, log), nil
}

// Get returns the value of prefix+key.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return data, true, nil
}

// Set stores value under prefix+key without expiration.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to store %q: %w", key, err)
	}
	r.log.Debug().Str("key", key).Int("bytes", len(value)).Msg("stored")
	return nil
}

// Close closes the Redis connection
func (r *Redis) Close() error { return r.rdb.Close() }
