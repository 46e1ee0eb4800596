// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_dashboard/internal/feature/quotes/domain/entity"
	"stock_dashboard/internal/feature/quotes/usecase"
)

// CachingMarketRepository decorates a MarketRepository with Redis caching.
// Entries are keyed by the exact combination of symbols and date range, so a
// repeated dashboard request within the TTL never hits the provider twice.
// Caching is best effort: a nil Redis client or any cache failure falls
// through to the underlying repository.
type CachingMarketRepository struct {
	inner     usecase.MarketRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingMarketRepository decorates a MarketRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "quotes".
func NewCachingMarketRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MarketRepository, namespace string) *CachingMarketRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "quotes"
	}
	return &CachingMarketRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FetchTimeSeries retrieves a fetch result, checking the cache first and
// falling back to the provider.
func (c *CachingMarketRepository) FetchTimeSeries(ctx context.Context, symbols []string, start, end time.Time) (entity.FetchResult, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FetchTimeSeries(ctx, symbols, start, end)
	}

	key := c.cacheKey(symbols, start, end)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.FetchResult
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the provider
	out, err := c.inner.FetchTimeSeries(ctx, symbols, start, end)
	if err != nil {
		return entity.FetchResult{}, err
	}

	// 3) Store in cache (best effort; NaN prices make the result unmarshalable
	// and simply skip the cache)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for the exact symbols and date range.
func (c *CachingMarketRepository) cacheKey(symbols []string, start, end time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s",
		c.namespace,
		safe(strings.Join(symbols, ",")),
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
