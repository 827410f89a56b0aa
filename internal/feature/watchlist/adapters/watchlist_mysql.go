// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	authentity "watchlist_backend/internal/feature/auth/domain/entity"
	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/usecase"
)

// watchlistMySQL はWatchlistRepositoryインターフェースのMySQL実装です。
type watchlistMySQL struct {
	db *gorm.DB
}

// watchlistMySQLがWatchlistRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.WatchlistRepository = (*watchlistMySQL)(nil)

// NewWatchlistRepository は指定されたDB接続でwatchlistMySQLリポジトリの新しいインスタンスを生成します。
func NewWatchlistRepository(db *gorm.DB) *watchlistMySQL {
	return &watchlistMySQL{db: db}
}

// FindByUser はユーザーのウォッチリストエントリをストアの自然順で返します。
func (r *watchlistMySQL) FindByUser(ctx context.Context, userID uint) ([]entity.WatchlistEntry, error) {
	var entries []entity.WatchlistEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// InsertIfAbsent は新しいエントリを追加します。
// (user_id, symbol) の複合ユニークキーに違反した場合、usecase.ErrAlreadyInWatchlistを返します。
// 既存行のcompanyやadded_atを上書きすることはありません。
func (r *watchlistMySQL) InsertIfAbsent(ctx context.Context, e *entity.WatchlistEntry) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		// MySQLエラー1062: ユニークキーの重複エントリ
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return usecase.ErrAlreadyInWatchlist
		}
		// TranslateError有効時（テストのSQLiteドライバ等）の重複キー
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrAlreadyInWatchlist
		}
		return err
	}
	return nil
}

// Delete は指定されたエントリを削除します。存在しないエントリの削除はエラーになりません（冪等）。
func (r *watchlistMySQL) Delete(ctx context.Context, userID uint, symbol string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&entity.WatchlistEntry{}).Error
}

// FindSymbolsByUserEmail はメールアドレスからユーザーを解決し、その銘柄一覧を返します。
// 該当ユーザーが存在しない場合は空スライスを返します（フェイルオープン）。
func (r *watchlistMySQL) FindSymbolsByUserEmail(ctx context.Context, email string) ([]string, error) {
	var user authentity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&entity.WatchlistEntry{}).
		Where("user_id = ?", user.ID).
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}
