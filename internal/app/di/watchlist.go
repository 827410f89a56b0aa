package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"watchlist_backend/internal/feature/watchlist/adapters"
	"watchlist_backend/internal/feature/watchlist/usecase"
	"watchlist_backend/internal/platform/cache"
)

// NewWatchlistRepository creates the watchlist repository wrapped in the
// per-user Redis view cache. The decorator handles a nil Redis client by
// passing straight through to MySQL.
func NewWatchlistRepository(rdb *redis.Client, db *gorm.DB) usecase.WatchlistRepository {
	repo := adapters.NewWatchlistRepository(db)
	return cache.NewCachingWatchlistRepository(rdb, 5*time.Minute, repo, "watchlist")
}
