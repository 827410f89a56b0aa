// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/usecase"
)

const (
	// QuoteTTL は現在値キャッシュの保持期間です。価格はニアリアルタイムで動くため短くします。
	QuoteTTL = 60 * time.Second
	// FundamentalsTTL はプロフィール・財務指標キャッシュの保持期間です。
	// ファンダメンタルズは変化が遅いため長めに取ります。
	FundamentalsTTL = time.Hour
)

// CachingMarketRepository decorates a MarketDataRepository with Redis caching.
// Quote entries use a short TTL, profile and metrics entries a long one,
// mirroring how fast each resource actually changes. A nil Redis client
// bypasses the cache entirely.
type CachingMarketRepository struct {
	inner     usecase.MarketDataRepository
	rdb       *redis.Client
	namespace string
}

// CachingMarketRepositoryがMarketDataRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketDataRepository = (*CachingMarketRepository)(nil)

// NewCachingMarketRepository decorates a MarketDataRepository with Redis
// caching. If namespace is empty, it uses "finnhub".
func NewCachingMarketRepository(rdb *redis.Client, inner usecase.MarketDataRepository, namespace string) *CachingMarketRepository {
	if namespace == "" {
		namespace = "finnhub"
	}
	return &CachingMarketRepository{inner: inner, rdb: rdb, namespace: namespace}
}

// cacheKey generates the cache key for one resource of one symbol.
func (c *CachingMarketRepository) cacheKey(resource, symbol string) string {
	return fmt.Sprintf("%s:%s:%s", c.namespace, resource, safe(symbol))
}

// GetQuote returns the cached quote or fetches it from the inner repository.
func (c *CachingMarketRepository) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	if c.rdb == nil {
		return c.inner.GetQuote(ctx, symbol)
	}

	key := c.cacheKey("quote", symbol)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Quote
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	// Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, QuoteTTL).Err()
	}
	return out, nil
}

// GetCompanyProfile returns the cached profile or fetches it from the inner repository.
func (c *CachingMarketRepository) GetCompanyProfile(ctx context.Context, symbol string) (*entity.CompanyProfile, error) {
	if c.rdb == nil {
		return c.inner.GetCompanyProfile(ctx, symbol)
	}

	key := c.cacheKey("profile", symbol)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.CompanyProfile
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.GetCompanyProfile(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, FundamentalsTTL).Err()
	}
	return out, nil
}

// GetFinancialMetrics returns the cached metrics or fetches them from the inner repository.
func (c *CachingMarketRepository) GetFinancialMetrics(ctx context.Context, symbol string) (*entity.FinancialMetrics, error) {
	if c.rdb == nil {
		return c.inner.GetFinancialMetrics(ctx, symbol)
	}

	key := c.cacheKey("metrics", symbol)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.FinancialMetrics
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.GetFinancialMetrics(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, FundamentalsTTL).Err()
	}
	return out, nil
}
