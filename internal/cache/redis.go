package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shoe-store/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, cfg config.CacheConfig, logger zerolog.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	opts.DB = cfg.DB

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info().
		Str("addr", opts.Addr).
		Int("db", opts.DB).
		Msg("redis connection established")

	return client, nil
}

// redisCache implements Cache on top of Redis, storing values as JSON.
type redisCache[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedis returns a Redis-backed cache whose keys all start with prefix.
func NewRedis[T any](client *redis.Client, prefix string, ttl time.Duration, logger zerolog.Logger) Cache[T] {
	return &redisCache[T]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With().Str("component", "cache").Str("prefix", prefix).Logger(),
	}
}

func (c *redisCache[T]) key(id string) string {
	return fmt.Sprintf("%s:%s", c.prefix, id)
}

// Get returns the cached value for key.
func (c *redisCache[T]) Get(ctx context.Context, key string) (*T, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cache key %s: %w", key, err)
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return &value, nil
}

// Set stores value under key.
func (c *redisCache[T]) Set(ctx context.Context, key string, value *T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}
	return nil
}

// genKey holds the write generation. It never expires and Flush keeps it.
func (c *redisCache[T]) genKey() string {
	return c.prefix + ":gen"
}

// Generation returns the write generation, 0 before the first Flush.
func (c *redisCache[T]) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey()).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

// Flush bumps the generation first, so a reader that started before the
// flush stores its result under a key nobody reads again, then deletes
// every other key under the prefix.
func (c *redisCache[T]) Flush(ctx context.Context) error {
	gen, err := c.client.Incr(ctx, c.genKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to advance cache generation: %w", err)
	}

	iter := c.client.Scan(ctx, 0, c.prefix+":*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		if iter.Val() == c.genKey() {
			continue
		}
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete cache keys: %w", err)
		}
	}

	c.logger.Debug().Int("keys", len(keys)).Int64("generation", gen).Msg("cache flushed")
	return nil
}
