package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"watchlist_backend/internal/app/di"
	"watchlist_backend/internal/app/router"
	authadapters "watchlist_backend/internal/feature/auth/adapters"
	authhandler "watchlist_backend/internal/feature/auth/transport/handler"
	authusecase "watchlist_backend/internal/feature/auth/usecase"
	watchlisthandler "watchlist_backend/internal/feature/watchlist/transport/handler"
	watchlistusecase "watchlist_backend/internal/feature/watchlist/usecase"
	infradb "watchlist_backend/internal/platform/db"
	infraredis "watchlist_backend/internal/platform/redis"
	jwtmw "watchlist_backend/internal/platform/jwt"
)

func main() {
	// .env（ローカル開発用）。存在しなければ環境変数をそのまま使う
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found. Using environment variables.")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	watchlistRepo := di.NewWatchlistRepository(rdb, db)
	market := di.NewMarket(rdb)

	// Usecase
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(watchlistRepo)
	enrichUC := watchlistusecase.NewEnrichmentUsecase(watchlistRepo, market)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	watchlistH := watchlisthandler.NewWatchlistHandler(watchlistUC, enrichUC)

	// ルータ生成
	router := router.NewRouter(authH, watchlistH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
