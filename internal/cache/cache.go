package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/config"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/observability"
)

// Cache key patterns. Everything under PublicPrefix is dropped on any content change.
const (
	PublicPrefix      = "public:"
	PublicVideosKey   = "public:videos:%s:%s" // public:videos:category:featured
	PublicVideoKey    = "public:video:%s"     // public:video:slug
	PublicTagsKey     = "public:tags"
	PublicPortraitKey = "public:portrait"
)

const scanBatch = 200

// NewRedisClient connects and pings Redis.
func NewRedisClient(cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// Cache stores JSON documents in Redis with a fixed TTL.
type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

func New(redisClient *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		redis: redisClient,
		ttl:   ttl,
	}
}

// remember returns the cached value for key, or calls load and caches its result.
// Redis failures degrade to a direct load; load errors are never cached.
func remember[T any](ctx context.Context, c *Cache, key string, load func() (T, error)) (T, error) {
	cached, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var value T
		if err := json.Unmarshal(cached, &value); err == nil {
			observability.CacheLookups.WithLabelValues("hit").Inc()
			return value, nil
		}
		observability.CacheLookups.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		observability.CacheLookups.WithLabelValues("miss").Inc()
	default:
		observability.CacheLookups.WithLabelValues("error").Inc()
		slog.Warn("Cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return value, nil
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("Cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	return value, nil
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.redis.Ping(ctx).Err()
}

// InvalidatePublic drops every cached public read.
func (c *Cache) InvalidatePublic(ctx context.Context) error {
	_, err := c.deleteMatching(ctx, PublicPrefix+"*")
	return err
}

// deleteMatching removes keys matching pattern using SCAN so Redis is never blocked.
func (c *Cache) deleteMatching(ctx context.Context, pattern string) (int64, error) {
	var (
		cursor  uint64
		deleted int64
	)

	for {
		keys, next, err := c.redis.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return deleted, fmt.Errorf("scan %s: %w", pattern, err)
		}

		if len(keys) > 0 {
			n, err := c.redis.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("delete %s: %w", pattern, err)
			}
			deleted += n
		}

		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}
