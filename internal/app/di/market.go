// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"watchlist_backend/internal/feature/watchlist/usecase"
	"watchlist_backend/internal/platform/cache"
	"watchlist_backend/internal/platform/externalapi/finnhub"
	infrahttp "watchlist_backend/internal/platform/http"
	"watchlist_backend/internal/shared/ratelimiter"
)

// finnhubFreeTierLimit はFinnhub無料プランの1分あたりの呼び出し上限です。
const finnhubFreeTierLimit = 60

// NewMarket creates the Finnhub market data client wired with the pooled HTTP
// client, the shared API rate limiter and, when Redis is available, the
// read-through cache. It returns nil when no API key is configured; callers
// must treat a nil market as "serve watchlists without enrichment".
func NewMarket(rdb *redis.Client) usecase.MarketDataRepository {
	cfg := finnhub.LoadConfig()
	if cfg.APIKey == "" {
		slog.Warn("FINNHUB_API_KEY is not set; watchlist enrichment disabled")
		return nil
	}

	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(finnhubFreeTierLimit, time.Minute)
	market := finnhub.NewFinnhubMarket(cfg, httpClient, limiter)

	// Redisキャッシュでラップ（quoteは60秒、profile/metricsは1時間）
	return cache.NewCachingMarketRepository(rdb, market, "finnhub")
}
