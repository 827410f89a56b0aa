// Package router assembles the HTTP route table for the service.
package router

import (
	authhandler "watchlist_backend/internal/feature/auth/transport/handler"
	watchlisthandler "watchlist_backend/internal/feature/watchlist/transport/handler"
	"watchlist_backend/internal/platform/http/handler"
	jwtmw "watchlist_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

// NewRouter はハンドラーを受け取ってルートテーブルを組み立てます。
func NewRouter(authHandler *authhandler.AuthHandler, watchlist *watchlisthandler.WatchlistHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	auth := r.Group("/")
	// リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired())
	{
		// 市場データ付きウォッチリスト（保存順）
		auth.GET("/watchlist", watchlist.List)
		// エンリッチなしの生エントリ
		auth.GET("/watchlist/raw", watchlist.ListRaw)
		// メールアドレスで解決した銘柄集合
		auth.GET("/watchlist/symbols", watchlist.Symbols)
		// 銘柄の追加・削除
		auth.POST("/watchlist", watchlist.Add)
		auth.DELETE("/watchlist/:symbol", watchlist.Remove)
	}

	return r
}
