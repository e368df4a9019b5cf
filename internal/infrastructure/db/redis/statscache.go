package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/api/metrics"
)

const cacheTTL = 60 * time.Second

// StatsCache is a short-TTL response cache for the stats endpoints, backed by
// Redis. Failures are logged and swallowed: a broken cache degrades to
// recomputation, never to an error response.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client, log zerolog.Logger) *StatsCache {
	return &StatsCache{client: client, ttl: cacheTTL, log: log}
}

// Get returns the cached payload for key, if present.
func (c *StatsCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("stats cache get failed")
		}
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
	return payload, true
}

// Set stores payload under key with the cache TTL.
func (c *StatsCache) Set(ctx context.Context, key string, payload []byte) {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("stats cache set failed")
	}
}
