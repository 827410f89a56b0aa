package cache_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/usecase"
	"watchlist_backend/internal/platform/cache"
)

// stubWatchlistRepo はキャッシュの内側に置くWatchlistRepositoryのスタブです。
type stubWatchlistRepo struct {
	entries   []entity.WatchlistEntry
	insertErr error
	findCalls int
}

func (s *stubWatchlistRepo) FindByUser(ctx context.Context, userID uint) ([]entity.WatchlistEntry, error) {
	s.findCalls++
	return s.entries, nil
}

func (s *stubWatchlistRepo) InsertIfAbsent(ctx context.Context, e *entity.WatchlistEntry) error {
	return s.insertErr
}

func (s *stubWatchlistRepo) Delete(ctx context.Context, userID uint, symbol string) error {
	return nil
}

func (s *stubWatchlistRepo) FindSymbolsByUserEmail(ctx context.Context, email string) ([]string, error) {
	return []string{"AAPL"}, nil
}

func TestCachingWatchlistRepository_FindByUser_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	inner := &stubWatchlistRepo{
		entries: []entity.WatchlistEntry{{UserID: 1, Symbol: "AAPL", Company: "Apple Inc."}},
	}
	repo := cache.NewCachingWatchlistRepository(rdb, time.Minute, inner, "watchlist")

	cached, err := json.Marshal(inner.entries)
	require.NoError(t, err)

	mock.ExpectGet("watchlist:user:1").RedisNil()
	mock.ExpectSet("watchlist:user:1", cached, time.Minute).SetVal("OK")

	entries, err := repo.FindByUser(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "AAPL", entries[0].Symbol)
	assert.Equal(t, 1, inner.findCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingWatchlistRepository_FindByUser_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	inner := &stubWatchlistRepo{}
	repo := cache.NewCachingWatchlistRepository(rdb, time.Minute, inner, "watchlist")

	cached, err := json.Marshal([]entity.WatchlistEntry{{UserID: 1, Symbol: "MSFT", Company: "Microsoft"}})
	require.NoError(t, err)

	mock.ExpectGet("watchlist:user:1").SetVal(string(cached))

	entries, err := repo.FindByUser(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "MSFT", entries[0].Symbol)
	// キャッシュヒット時はDBに到達しない
	assert.Zero(t, inner.findCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 追加が成功したらユーザーのキャッシュキーが削除されること（無効化シグナル）
func TestCachingWatchlistRepository_InsertInvalidatesUserCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	inner := &stubWatchlistRepo{}
	repo := cache.NewCachingWatchlistRepository(rdb, time.Minute, inner, "watchlist")

	mock.ExpectDel("watchlist:user:7").SetVal(1)

	err := repo.InsertIfAbsent(context.Background(), &entity.WatchlistEntry{UserID: 7, Symbol: "AAPL", Company: "Apple Inc."})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 重複追加はエラーを伝播し、キャッシュは無効化されないこと
func TestCachingWatchlistRepository_DuplicateInsertLeavesCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	inner := &stubWatchlistRepo{insertErr: usecase.ErrAlreadyInWatchlist}
	repo := cache.NewCachingWatchlistRepository(rdb, time.Minute, inner, "watchlist")

	err := repo.InsertIfAbsent(context.Background(), &entity.WatchlistEntry{UserID: 7, Symbol: "AAPL", Company: "Apple Inc."})

	assert.ErrorIs(t, err, usecase.ErrAlreadyInWatchlist)
	// Delを一切期待していないので、呼ばれていればここで失敗する
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingWatchlistRepository_DeleteInvalidatesUserCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	inner := &stubWatchlistRepo{}
	repo := cache.NewCachingWatchlistRepository(rdb, time.Minute, inner, "watchlist")

	mock.ExpectDel("watchlist:user:7").SetVal(1)

	err := repo.Delete(context.Background(), 7, "AAPL")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// メール解決はキャッシュを介さず常に内側へ委譲すること
func TestCachingWatchlistRepository_FindSymbolsByUserEmailPassThrough(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	repo := cache.NewCachingWatchlistRepository(rdb, time.Minute, &stubWatchlistRepo{}, "watchlist")

	symbols, err := repo.FindSymbolsByUserEmail(context.Background(), "user@example.com")

	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, symbols)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingWatchlistRepository_NilRedisPassThrough(t *testing.T) {
	t.Parallel()

	inner := &stubWatchlistRepo{
		entries: []entity.WatchlistEntry{{UserID: 1, Symbol: "AAPL", Company: "Apple Inc."}},
	}
	repo := cache.NewCachingWatchlistRepository(nil, 0, inner, "")

	entries, err := repo.FindByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 1, inner.findCalls)

	assert.NoError(t, repo.InsertIfAbsent(context.Background(), &entity.WatchlistEntry{UserID: 1, Symbol: "MSFT", Company: "Microsoft"}))
	assert.NoError(t, repo.Delete(context.Background(), 1, "MSFT"))
}
