// internal/providers/cache.go
package providers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/common/metrics"
	"marketplace-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

// CachedSource is a read-through redis cache in front of another Source.
// Redis failures are logged and the inner source is queried directly.
type CachedSource struct {
	inner  Source
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSource(inner Source, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedSource {
	return &CachedSource{
		inner:  inner,
		rdb:    rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"source": inner.Name(), "cache": "redis"}),
	}
}

func CacheKey(serviceType models.ServiceType, city models.City) string {
	return fmt.Sprintf("providers:%s:%s", serviceType, city)
}

func (c *CachedSource) Name() string { return c.inner.Name() }

func (c *CachedSource) ListCandidates(ctx context.Context, serviceType models.ServiceType, city models.City) ([]models.Provider, error) {
	key := CacheKey(serviceType, city)

	if cached, ok := c.lookup(ctx, key); ok {
		return cached, nil
	}

	providers, err := c.inner.ListCandidates(ctx, serviceType, city)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(providers); err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("Failed to cache candidate pool", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
	return providers, nil
}

func (c *CachedSource) lookup(ctx context.Context, key string) ([]models.Provider, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			metrics.CandidateCacheLookups.WithLabelValues("miss").Inc()
			return nil, false
		}
		metrics.CandidateCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("Candidate cache unavailable", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false
	}

	var providers []models.Provider
	if err := json.Unmarshal(data, &providers); err != nil {
		metrics.CandidateCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("Discarding corrupt cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false
	}

	metrics.CandidateCacheLookups.WithLabelValues("hit").Inc()
	return providers, true
}

// Invalidate drops the cached pool. Nothing in this module calls it; the
// service that owns provider records must, otherwise a status change is
// seen only after the TTL expires.
func (c *CachedSource) Invalidate(ctx context.Context, serviceType models.ServiceType, city models.City) error {
	return c.rdb.Del(ctx, CacheKey(serviceType, city)).Err()
}
