package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/usecase"
	"watchlist_backend/internal/platform/externalapi/finnhub/dto"
	"watchlist_backend/internal/shared/ratelimiter"
)

// FinnhubMarket はFinnhub外部APIから株価・企業データを取得するMarketDataRepository実装です。
type FinnhubMarket struct {
	cfg    Config
	client *http.Client
	// limiter はAPIコール数の上限（無料プランは60回/分）を守るためのゲートです。nil可。
	limiter ratelimiter.RateLimiterInterface
}

// FinnhubMarketがMarketDataRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketDataRepository = (*FinnhubMarket)(nil)

// NewFinnhubMarket は指定された設定とHTTPクライアントでFinnhubMarketの新しいインスタンスを生成します。
// limiterがnilでない場合、各リクエストの前に呼び出し回数の上限を確認します。
func NewFinnhubMarket(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *FinnhubMarket {
	return &FinnhubMarket{cfg: cfg, client: client, limiter: limiter}
}

// GetQuote は現在値と前日比（%）のスナップショットを取得します。
func (f *FinnhubMarket) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	var body dto.QuoteResponse
	if err := f.getJSON(ctx, "/quote", symbol, nil, &body); err != nil {
		return nil, err
	}
	return &entity.Quote{Current: body.Current, PercentChange: body.PercentChange}, nil
}

// GetCompanyProfile は企業プロフィール（時価総額など）を取得します。
func (f *FinnhubMarket) GetCompanyProfile(ctx context.Context, symbol string) (*entity.CompanyProfile, error) {
	var body dto.CompanyProfileResponse
	if err := f.getJSON(ctx, "/stock/profile2", symbol, nil, &body); err != nil {
		return nil, err
	}
	return &entity.CompanyProfile{MarketCapitalization: body.MarketCapitalization}, nil
}

// GetFinancialMetrics は集計済み財務指標を取得します。
// metricマップには文字列値も混在するため、数値のみをドメイン型に残します。
func (f *FinnhubMarket) GetFinancialMetrics(ctx context.Context, symbol string) (*entity.FinancialMetrics, error) {
	var body dto.FinancialMetricsResponse
	if err := f.getJSON(ctx, "/stock/metric", symbol, url.Values{"metric": {"all"}}, &body); err != nil {
		return nil, err
	}

	metric := make(map[string]float64, len(body.Metric))
	for k, v := range body.Metric {
		if n, isNum := v.(float64); isNum {
			metric[k] = n
		}
	}
	return &entity.FinancialMetrics{Metric: metric}, nil
}

// getJSON は共通のGET処理です。symbolとtokenをクエリパラメータに付与し、
// 2xx以外のステータスとデコード失敗をエラーとして返します。
func (f *FinnhubMarket) getJSON(ctx context.Context, path, symbol string, extra url.Values, out any) error {
	if f.limiter != nil {
		f.limiter.WaitIfNeeded()
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("token", f.cfg.APIKey)
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u := fmt.Sprintf("%s%s?%s", f.cfg.BaseURL, path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	res, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("finnhub http %d", res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
