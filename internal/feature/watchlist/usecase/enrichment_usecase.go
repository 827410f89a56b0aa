package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
)

// MarketDataRepository は市場データAPIの読み取り層を抽象化します。
// 各呼び出しは銘柄単位で失敗し得るもので、呼び出し側は1銘柄のエラーを
// 他の銘柄に波及させてはいけません。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketDataRepository interface {
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
	GetCompanyProfile(ctx context.Context, symbol string) (*entity.CompanyProfile, error)
	GetFinancialMetrics(ctx context.Context, symbol string) (*entity.FinancialMetrics, error)
}

// peMetricKeys はP/E値を探すメトリクスキーの優先順です。
var peMetricKeys = []string{"peExclExtraTTM", "peTTM", "trailingPE"}

// EnrichmentUsecase builds display-ready watchlist rows by joining persisted
// entries with quote, market-cap and valuation data from the market-data API.
type EnrichmentUsecase struct {
	repo WatchlistRepository
	// market is nil when no API credential is configured; reads then degrade
	// to base fields instead of failing.
	market MarketDataRepository
}

// NewEnrichmentUsecase はEnrichmentUsecaseの新しいインスタンスを生成します。
func NewEnrichmentUsecase(repo WatchlistRepository, market MarketDataRepository) *EnrichmentUsecase {
	return &EnrichmentUsecase{repo: repo, market: market}
}

// GetWatchlistWithData はユーザーのウォッチリストを市場データ付きで返します。
// 結果は保存順を維持します。フェッチに失敗した行は基本フィールドのみとなり、
// 未認証・空リスト・リポジトリ障害はいずれも空リストを返します（フェイルオープン）。
func (u *EnrichmentUsecase) GetWatchlistWithData(ctx context.Context, userID uint) []entity.EnrichedEntry {
	if userID == 0 {
		return []entity.EnrichedEntry{}
	}

	items, err := u.repo.FindByUser(ctx, userID)
	if err != nil {
		slog.Error("failed to load watchlist for enrichment", "user_id", userID, "error", err)
		return []entity.EnrichedEntry{}
	}
	if len(items) == 0 {
		// ネットワーク呼び出しを一切行わずに即返す
		return []entity.EnrichedEntry{}
	}

	if u.market == nil {
		slog.Warn("market data client not configured; returning watchlist without enrichment", "user_id", userID)
		out := make([]entity.EnrichedEntry, 0, len(items))
		for _, it := range items {
			out = append(out, baseRow(it))
		}
		return out
	}

	// 1エントリ=1ゴルーチンでファンアウトし、結果をインデックスで書き込む。
	// 完了順に関係なく保存順が維持され、1行の失敗は他の行に影響しない。
	out := make([]entity.EnrichedEntry, len(items))
	var wg sync.WaitGroup
	for i, it := range items {
		wg.Add(1)
		go func(i int, it entity.WatchlistEntry) {
			defer wg.Done()
			out[i] = u.enrichOne(ctx, it)
		}(i, it)
	}
	wg.Wait()
	return out
}

// enrichOne は1エントリ分のquote・profile・metricsを並行に取得してマージします。
// いずれかの取得に失敗した場合、その行は基本フィールドのみに縮退します。
func (u *EnrichmentUsecase) enrichOne(ctx context.Context, it entity.WatchlistEntry) entity.EnrichedEntry {
	sym := NormalizeSymbol(it.Symbol)

	var (
		wg               sync.WaitGroup
		quote            *entity.Quote
		profile          *entity.CompanyProfile
		metrics          *entity.FinancialMetrics
		qErr, pErr, mErr error
	)
	wg.Add(3)
	go func() { defer wg.Done(); quote, qErr = u.market.GetQuote(ctx, sym) }()
	go func() { defer wg.Done(); profile, pErr = u.market.GetCompanyProfile(ctx, sym) }()
	go func() { defer wg.Done(); metrics, mErr = u.market.GetFinancialMetrics(ctx, sym) }()
	wg.Wait()

	if qErr != nil || pErr != nil || mErr != nil {
		slog.Warn("enrichment failed for symbol; returning base fields",
			"symbol", sym, "quote_error", qErr, "profile_error", pErr, "metrics_error", mErr)
		return baseRow(it)
	}

	row := baseRow(it)
	if quote != nil {
		price := quote.Current
		change := quote.PercentChange
		row.CurrentPrice = &price
		row.ChangePercent = &change
		row.PriceFormatted = formatCurrency(price)
		row.ChangeFormatted = formatPercent(change)
	}
	if profile != nil {
		row.MarketCap = formatBillions(profile.MarketCapitalization)
	}
	if metrics != nil {
		for _, key := range peMetricKeys {
			if v, found := metrics.Metric[key]; found {
				row.PERatio = fmt.Sprintf("%.2f", v)
				break
			}
		}
	}
	return row
}

// baseRow は市場データなしのエンリッチ行（縮退形）を作ります。
func baseRow(it entity.WatchlistEntry) entity.EnrichedEntry {
	return entity.EnrichedEntry{
		UserID:  it.UserID,
		Symbol:  NormalizeSymbol(it.Symbol),
		Company: it.Company,
		AddedAt: it.AddedAt,
	}
}

// formatCurrency は価格を $123.45 の形式にします。
func formatCurrency(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// formatPercent は前日比を符号付きの -2.35% の形式にします。
func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// formatBillions は10億ドル単位の時価総額を整形します。
// 1000（=1兆ドル）以上はT表記に切り替えます。
func formatBillions(v float64) string {
	if v >= 1000 {
		return fmt.Sprintf("$%.2fT", v/1000)
	}
	return fmt.Sprintf("$%.2fB", v)
}
