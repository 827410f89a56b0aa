package cache_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/platform/cache"
)

// stubMarket はキャッシュの内側に置くMarketDataRepositoryのスタブです。
// 呼び出し回数を記録し、キャッシュヒット時に内側が呼ばれないことを検証できます。
type stubMarket struct {
	quote   *entity.Quote
	profile *entity.CompanyProfile
	metrics *entity.FinancialMetrics
	err     error
	calls   int
}

func (s *stubMarket) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	s.calls++
	return s.quote, s.err
}

func (s *stubMarket) GetCompanyProfile(ctx context.Context, symbol string) (*entity.CompanyProfile, error) {
	s.calls++
	return s.profile, s.err
}

func (s *stubMarket) GetFinancialMetrics(ctx context.Context, symbol string) (*entity.FinancialMetrics, error) {
	s.calls++
	return s.metrics, s.err
}

func TestCachingMarketRepository_GetQuote_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	inner := &stubMarket{quote: &entity.Quote{Current: 189.5, PercentChange: -2.345}}
	repo := cache.NewCachingMarketRepository(rdb, inner, "finnhub")

	cached, err := json.Marshal(inner.quote)
	require.NoError(t, err)

	mock.ExpectGet("finnhub:quote:AAPL").RedisNil()
	mock.ExpectSet("finnhub:quote:AAPL", cached, cache.QuoteTTL).SetVal("OK")

	quote, err := repo.GetQuote(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, 189.5, quote.Current)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingMarketRepository_GetQuote_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	inner := &stubMarket{}
	repo := cache.NewCachingMarketRepository(rdb, inner, "finnhub")

	cached, err := json.Marshal(&entity.Quote{Current: 100.25, PercentChange: 1.2})
	require.NoError(t, err)

	mock.ExpectGet("finnhub:quote:AAPL").SetVal(string(cached))

	quote, err := repo.GetQuote(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, 100.25, quote.Current)
	// キャッシュヒット時は内側のAPIクライアントが呼ばれない
	assert.Zero(t, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 壊れたキャッシュエントリは削除され、内側から再取得されること
func TestCachingMarketRepository_GetQuote_CorruptedEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	inner := &stubMarket{quote: &entity.Quote{Current: 55, PercentChange: 0.5}}
	repo := cache.NewCachingMarketRepository(rdb, inner, "finnhub")

	cached, err := json.Marshal(inner.quote)
	require.NoError(t, err)

	mock.ExpectGet("finnhub:quote:AAPL").SetVal("not-json")
	mock.ExpectDel("finnhub:quote:AAPL").SetVal(1)
	mock.ExpectSet("finnhub:quote:AAPL", cached, cache.QuoteTTL).SetVal("OK")

	quote, err := repo.GetQuote(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, float64(55), quote.Current)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingMarketRepository_GetQuote_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	inner := &stubMarket{err: errors.New("upstream timeout")}
	repo := cache.NewCachingMarketRepository(rdb, inner, "finnhub")

	mock.ExpectGet("finnhub:quote:AAPL").RedisNil()

	_, err := repo.GetQuote(context.Background(), "AAPL")

	// 内側のエラーはそのまま伝播し、キャッシュへの書き込みは行われない
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// プロフィールとメトリクスはファンダメンタルズ用の長いTTLで保存されること
func TestCachingMarketRepository_FundamentalsTTL(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	inner := &stubMarket{
		profile: &entity.CompanyProfile{MarketCapitalization: 950},
		metrics: &entity.FinancialMetrics{Metric: map[string]float64{"peTTM": 28.9}},
	}
	repo := cache.NewCachingMarketRepository(rdb, inner, "finnhub")

	profileJSON, err := json.Marshal(inner.profile)
	require.NoError(t, err)
	metricsJSON, err := json.Marshal(inner.metrics)
	require.NoError(t, err)

	mock.ExpectGet("finnhub:profile:MSFT").RedisNil()
	mock.ExpectSet("finnhub:profile:MSFT", profileJSON, cache.FundamentalsTTL).SetVal("OK")
	mock.ExpectGet("finnhub:metrics:MSFT").RedisNil()
	mock.ExpectSet("finnhub:metrics:MSFT", metricsJSON, cache.FundamentalsTTL).SetVal("OK")

	profile, err := repo.GetCompanyProfile(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Equal(t, float64(950), profile.MarketCapitalization)

	metrics, err := repo.GetFinancialMetrics(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Equal(t, 28.9, metrics.Metric["peTTM"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Redisクライアントがnilの場合はキャッシュを素通りして内側に委譲すること
func TestCachingMarketRepository_NilRedisPassThrough(t *testing.T) {
	t.Parallel()

	inner := &stubMarket{
		quote:   &entity.Quote{Current: 1},
		profile: &entity.CompanyProfile{MarketCapitalization: 2},
		metrics: &entity.FinancialMetrics{Metric: map[string]float64{}},
	}
	repo := cache.NewCachingMarketRepository(nil, inner, "")

	_, err := repo.GetQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	_, err = repo.GetCompanyProfile(context.Background(), "AAPL")
	require.NoError(t, err)
	_, err = repo.GetFinancialMetrics(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, 3, inner.calls)
}
