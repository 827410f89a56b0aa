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

// CachingWatchlistRepository decorates a WatchlistRepository with a per-user
// Redis cache of the watchlist view. A successful mutation deletes the user's
// cache key; that deletion is the invalidation signal consumed by the next
// read. A nil Redis client degrades to pass-through.
type CachingWatchlistRepository struct {
	inner     usecase.WatchlistRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingWatchlistRepositoryがWatchlistRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.WatchlistRepository = (*CachingWatchlistRepository)(nil)

// NewCachingWatchlistRepository decorates a WatchlistRepository with Redis
// caching. If ttl is 0, it defaults to 5 minutes. If namespace is empty, it
// uses "watchlist".
func NewCachingWatchlistRepository(rdb *redis.Client, ttl time.Duration, inner usecase.WatchlistRepository, namespace string) *CachingWatchlistRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "watchlist"
	}
	return &CachingWatchlistRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// userKey はユーザー単位のウォッチリストビューのキャッシュキーです。
func (c *CachingWatchlistRepository) userKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", c.namespace, userID)
}

// FindByUser retrieves entries, checking the cache first then falling back to
// the database.
func (c *CachingWatchlistRepository) FindByUser(ctx context.Context, userID uint) ([]entity.WatchlistEntry, error) {
	if c.rdb == nil {
		return c.inner.FindByUser(ctx, userID)
	}

	key := c.userKey(userID)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.WatchlistEntry
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// InsertIfAbsent persists the entry and invalidates the user's cached view.
// A duplicate insert leaves both the store and the cache untouched.
func (c *CachingWatchlistRepository) InsertIfAbsent(ctx context.Context, e *entity.WatchlistEntry) error {
	if err := c.inner.InsertIfAbsent(ctx, e); err != nil {
		return err
	}
	if c.rdb != nil {
		_ = c.rdb.Del(ctx, c.userKey(e.UserID)).Err() // Best effort
	}
	return nil
}

// Delete removes the entry and invalidates the user's cached view.
func (c *CachingWatchlistRepository) Delete(ctx context.Context, userID uint, symbol string) error {
	if err := c.inner.Delete(ctx, userID, symbol); err != nil {
		return err
	}
	if c.rdb != nil {
		_ = c.rdb.Del(ctx, c.userKey(userID)).Err() // Best effort
	}
	return nil
}

// FindSymbolsByUserEmail passes through to the inner repository. Email-keyed
// lookups are rare and must reflect the live store.
func (c *CachingWatchlistRepository) FindSymbolsByUserEmail(ctx context.Context, email string) ([]string, error) {
	return c.inner.FindSymbolsByUserEmail(ctx, email)
}
