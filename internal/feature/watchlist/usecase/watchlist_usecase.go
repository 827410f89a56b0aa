// Package usecase はwatchlistフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
)

// WatchlistRepository はウォッチリストエントリの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type WatchlistRepository interface {
	// FindByUser はユーザーのエントリをストアの自然順で返します。
	// 呼び出し側はソート順に依存してはいけません。
	FindByUser(ctx context.Context, userID uint) ([]entity.WatchlistEntry, error)

	// InsertIfAbsent は新しいエントリを永続化します。(user, symbol) の組が
	// 既に存在する場合はErrAlreadyInWatchlistを返し、既存行のcompanyや
	// added_atを書き換えることはありません。
	InsertIfAbsent(ctx context.Context, e *entity.WatchlistEntry) error

	// Delete は指定されたエントリを削除します。存在しないエントリの削除はエラーになりません。
	Delete(ctx context.Context, userID uint, symbol string) error

	// FindSymbolsByUserEmail はメールアドレスからユーザーを解決し、その銘柄一覧を返します。
	// 該当ユーザーが存在しない場合は空スライスを返します（エラーではない）。
	FindSymbolsByUserEmail(ctx context.Context, email string) ([]string, error)
}

// Result is the outcome contract for watchlist mutations: {OK: true} or
// {OK: false, Error: <short message>}. Underlying faults never cross this
// boundary as Go errors; they are logged and translated here.
type Result struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// WatchlistUsecase はウォッチリストの追加・削除・参照操作を提供します。
type WatchlistUsecase struct {
	repo WatchlistRepository
}

// NewWatchlistUsecase はWatchlistUsecaseの新しいインスタンスを生成します。
func NewWatchlistUsecase(repo WatchlistRepository) *WatchlistUsecase {
	return &WatchlistUsecase{repo: repo}
}

// NormalizeSymbol はティッカーシンボルをトリムして大文字に正規化します。
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Add は銘柄をユーザーのウォッチリストに登録します。
// 未認証（userID 0）や正規化後に空になる入力は失敗のResultになります。
// 登録済みの銘柄は "Already in watchlist" として報告され、既存行はそのまま残ります。
func (u *WatchlistUsecase) Add(ctx context.Context, userID uint, symbol, company string) Result {
	if userID == 0 {
		return Result{OK: false, Error: MsgNotAuthenticated}
	}
	sym := NormalizeSymbol(symbol)
	comp := strings.TrimSpace(company)
	if sym == "" || comp == "" {
		return Result{OK: false, Error: MsgInvalidPayload}
	}

	entry := &entity.WatchlistEntry{UserID: userID, Symbol: sym, Company: comp}
	if err := u.repo.InsertIfAbsent(ctx, entry); err != nil {
		if errors.Is(err, ErrAlreadyInWatchlist) {
			// 重複追加は想定内の結果なのでエラーログは出さない
			return Result{OK: false, Error: MsgAlreadyInWatchlist}
		}
		slog.Error("failed to add to watchlist", "user_id", userID, "symbol", sym, "error", err)
		return Result{OK: false, Error: MsgAddFailed}
	}
	return Result{OK: true}
}

// Remove は銘柄をユーザーのウォッチリストから削除します。
// 存在しない銘柄の削除も成功として報告します（冪等）。
func (u *WatchlistUsecase) Remove(ctx context.Context, userID uint, symbol string) Result {
	if userID == 0 {
		return Result{OK: false, Error: MsgNotAuthenticated}
	}
	sym := NormalizeSymbol(symbol)
	if sym == "" {
		return Result{OK: false, Error: MsgInvalidPayload}
	}

	if err := u.repo.Delete(ctx, userID, sym); err != nil {
		slog.Error("failed to remove from watchlist", "user_id", userID, "symbol", sym, "error", err)
		return Result{OK: false, Error: MsgRemoveFailed}
	}
	return Result{OK: true}
}

// GetUserWatchlist はエンリッチなしの生エントリを返します。
// 未認証やリポジトリ障害の場合は空リストを返します（フェイルオープン）。
func (u *WatchlistUsecase) GetUserWatchlist(ctx context.Context, userID uint) []entity.WatchlistEntry {
	if userID == 0 {
		return []entity.WatchlistEntry{}
	}
	items, err := u.repo.FindByUser(ctx, userID)
	if err != nil {
		slog.Error("failed to load watchlist", "user_id", userID, "error", err)
		return []entity.WatchlistEntry{}
	}
	if items == nil {
		items = []entity.WatchlistEntry{}
	}
	return items
}

// GetWatchlistSymbolsByEmail はセッションではなくメールアドレスでユーザーを解決し、
// その銘柄集合を返します。ウォッチリスト以外のページが「この銘柄は保存済みか」を
// 知るために使います。解決に失敗した場合は空集合を返します（フェイルオープン）。
func (u *WatchlistUsecase) GetWatchlistSymbolsByEmail(ctx context.Context, email string) []string {
	if strings.TrimSpace(email) == "" {
		return []string{}
	}
	symbols, err := u.repo.FindSymbolsByUserEmail(ctx, email)
	if err != nil {
		slog.Error("failed to resolve watchlist symbols by email", "email", email, "error", err)
		return []string{}
	}
	if symbols == nil {
		symbols = []string{}
	}
	return symbols
}
