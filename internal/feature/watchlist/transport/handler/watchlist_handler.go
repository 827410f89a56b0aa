// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/transport/http/dto"
	"watchlist_backend/internal/feature/watchlist/usecase"
	jwtmw "watchlist_backend/internal/platform/jwt"
)

// WatchlistUsecase はウォッチリストの変更・参照操作のインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type WatchlistUsecase interface {
	Add(ctx context.Context, userID uint, symbol, company string) usecase.Result
	Remove(ctx context.Context, userID uint, symbol string) usecase.Result
	GetUserWatchlist(ctx context.Context, userID uint) []entity.WatchlistEntry
	GetWatchlistSymbolsByEmail(ctx context.Context, email string) []string
}

// EnrichmentUsecase は市場データ付きウォッチリスト参照のインターフェースです。
type EnrichmentUsecase interface {
	GetWatchlistWithData(ctx context.Context, userID uint) []entity.EnrichedEntry
}

// WatchlistHandler はウォッチリストのHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc     WatchlistUsecase
	enrich EnrichmentUsecase
}

// NewWatchlistHandler は新しい WatchlistHandler を作成します。
func NewWatchlistHandler(uc WatchlistUsecase, enrich EnrichmentUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc, enrich: enrich}
}

// currentUserID はJWTミドルウェアが解決した認証ユーザーIDを返します。
// 有効なセッションがない場合は0を返します。
func currentUserID(c *gin.Context) uint {
	return c.GetUint(jwtmw.ContextUserID)
}

// statusFor はミューテーション結果をHTTPステータスコードに対応付けます。
// レスポンスボディはコードに関わらず常に {ok, error} の形です。
func statusFor(res usecase.Result) int {
	if res.OK {
		return http.StatusOK
	}
	switch res.Error {
	case usecase.MsgNotAuthenticated:
		return http.StatusUnauthorized
	case usecase.MsgInvalidPayload:
		return http.StatusBadRequest
	case usecase.MsgAlreadyInWatchlist:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Add は POST /watchlist を処理し、銘柄をウォッチリストに追加します。
func (h *WatchlistHandler) Add(c *gin.Context) {
	var req dto.AddReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("watchlist add validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ActionResult{OK: false, Error: usecase.MsgInvalidPayload})
		return
	}
	res := h.uc.Add(c.Request.Context(), currentUserID(c), req.Symbol, req.Company)
	c.JSON(statusFor(res), dto.ActionResult{OK: res.OK, Error: res.Error})
}

// Remove は DELETE /watchlist/:symbol を処理します。
// 存在しない銘柄の削除も成功として報告されます。
func (h *WatchlistHandler) Remove(c *gin.Context) {
	res := h.uc.Remove(c.Request.Context(), currentUserID(c), c.Param("symbol"))
	c.JSON(statusFor(res), dto.ActionResult{OK: res.OK, Error: res.Error})
}

// List は GET /watchlist を処理し、市場データ付きの行を保存順で返します。
// エンリッチに失敗した行は基本フィールドのみで返ります。
func (h *WatchlistHandler) List(c *gin.Context) {
	rows := h.enrich.GetWatchlistWithData(c.Request.Context(), currentUserID(c))
	out := make([]dto.WatchlistRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.WatchlistRow{
			Symbol:          r.Symbol,
			Company:         r.Company,
			AddedAt:         r.AddedAt,
			CurrentPrice:    r.CurrentPrice,
			ChangePercent:   r.ChangePercent,
			PriceFormatted:  r.PriceFormatted,
			ChangeFormatted: r.ChangeFormatted,
			MarketCap:       r.MarketCap,
			PERatio:         r.PERatio,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ListRaw は GET /watchlist/raw を処理し、市場データなしの生エントリを返します。
func (h *WatchlistHandler) ListRaw(c *gin.Context) {
	items := h.uc.GetUserWatchlist(c.Request.Context(), currentUserID(c))
	out := make([]dto.WatchlistItem, 0, len(items))
	for _, it := range items {
		out = append(out, dto.WatchlistItem{
			Symbol:  it.Symbol,
			Company: it.Company,
			AddedAt: it.AddedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Symbols は GET /watchlist/symbols を処理します。
// emailクエリパラメータ省略時はセッションのメールアドレスで解決します。
// 解決できない場合でも空集合を返します（フェイルオープン）。
func (h *WatchlistHandler) Symbols(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		email = c.GetString(jwtmw.ContextUserEmail)
	}
	symbols := h.uc.GetWatchlistSymbolsByEmail(c.Request.Context(), email)
	c.JSON(http.StatusOK, dto.SymbolsResponse{Symbols: symbols})
}
