package cache

import (
	"context"
	"errors"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/ratelimit"
)

// Stats describes the cache for the admin panel.
type Stats struct {
	RedisConnected bool     `json:"redis_connected"`
	KeyCount       int64    `json:"total_keys"`
	PublicKeys     int      `json:"public_keys"`
	PublicSample   []string `json:"public_keys_sample"`
}

const sampleSize = 10

var ErrUnknownKind = errors.New("unknown cache type, expected public, ratelimit or all")

// Patterns the admin may clear.
var clearPatterns = map[string]string{
	"public":    PublicPrefix + "*",
	"ratelimit": ratelimit.KeyPrefix + "*",
	"all":       "*",
}

// KnownKind reports whether kind names a clearable key set. Empty means public.
func KnownKind(kind string) bool {
	if kind == "" {
		return true
	}
	_, ok := clearPatterns[kind]
	return ok
}

func (c *Cache) Stats(ctx context.Context) Stats {
	stats := Stats{PublicSample: []string{}}

	if err := c.redis.Ping(ctx).Err(); err != nil {
		return stats
	}
	stats.RedisConnected = true

	if n, err := c.redis.DBSize(ctx).Result(); err == nil {
		stats.KeyCount = n
	}

	iter := c.redis.Scan(ctx, 0, PublicPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		stats.PublicKeys++
		if len(stats.PublicSample) < sampleSize {
			stats.PublicSample = append(stats.PublicSample, iter.Val())
		}
	}

	return stats
}

// Clear removes the keys of one cache kind: public, ratelimit or all.
func (c *Cache) Clear(ctx context.Context, kind string) (int64, error) {
	if kind == "" {
		kind = "public"
	}

	pattern, ok := clearPatterns[kind]
	if !ok {
		return 0, ErrUnknownKind
	}

	return c.deleteMatching(ctx, pattern)
}
