package market

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"skillpath_backend/pkg/logger"
	"skillpath_backend/pkg/monitoring"
)

const analysisKeyPrefix = "market:analysis:"

// CachedProvider memoizes Analyze results in Redis per title and location so
// that repeated lookups return the same figures. Search is deterministic and
// passes straight through.
type CachedProvider struct {
	Next  Provider
	Redis *redis.Client
	ttl   atomic.Int64
}

func NewCachedProvider(next Provider, rdb *redis.Client, ttl time.Duration) *CachedProvider {
	c := &CachedProvider{Next: next, Redis: rdb}
	c.SetTTL(ttl)
	return c
}

// SetTTL changes the expiry applied to entries written from now on.
func (c *CachedProvider) SetTTL(ttl time.Duration) {
	c.ttl.Store(int64(ttl))
}

func (c *CachedProvider) TTL() time.Duration {
	return time.Duration(c.ttl.Load())
}

func analysisKey(q Query) string {
	location := strings.TrimSpace(q.Location)
	if location == "" {
		location = DefaultAnalysisLocation
	}
	return analysisKeyPrefix + strings.ToLower(strings.TrimSpace(q.JobTitle)) + "|" + strings.ToLower(location)
}

func (c *CachedProvider) Analyze(ctx context.Context, q Query) (*Analysis, error) {
	key := analysisKey(q)

	val, err := c.Redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		var a Analysis
		if err := json.Unmarshal([]byte(val), &a); err == nil {
			logger.Log.Debug("market analysis cache hit", zap.String("key", key))
			monitoring.MarketCacheLookups.WithLabelValues("hit").Inc()
			return &a, nil
		}
		logger.Log.Warn("discarding corrupt market analysis cache entry", zap.String("key", key))
	case err != redis.Nil:
		logger.Log.Warn("market analysis cache read failed", zap.String("key", key), zap.Error(err))
	}

	a, err := c.Next.Analyze(ctx, q)
	if err != nil {
		return nil, err
	}
	logger.Log.Debug("market analysis cache miss", zap.String("key", key))
	monitoring.MarketCacheLookups.WithLabelValues("miss").Inc()

	if data, err := json.Marshal(a); err == nil {
		if err := c.Redis.Set(ctx, key, data, c.TTL()).Err(); err != nil {
			logger.Log.Warn("market analysis cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return a, nil
}

func (c *CachedProvider) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	return c.Next.Search(ctx, q)
}
