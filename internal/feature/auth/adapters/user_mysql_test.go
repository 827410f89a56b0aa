package adapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"watchlist_backend/internal/feature/auth/adapters"
	"watchlist_backend/internal/feature/auth/domain/entity"
	"watchlist_backend/internal/feature/auth/usecase"
)

// setupTestDB はテスト用のインメモリSQLite DBをセットアップします。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&entity.User{}))
	return db
}

func TestUserMySQL_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := adapters.NewUserMySQL(setupTestDB(t))

	user := &entity.User{Email: "user@gmail.com", Password: "hashed", FullName: "Test User"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	// 同じメールアドレスの再登録はErrEmailAlreadyExists
	dup := &entity.User{Email: "user@gmail.com", Password: "other", FullName: "Other User"}
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
}

func TestUserMySQL_FindByEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := adapters.NewUserMySQL(setupTestDB(t))

	created := &entity.User{Email: "user@gmail.com", Password: "hashed", FullName: "Test User", Country: "JP"}
	require.NoError(t, repo.Create(ctx, created))

	found, err := repo.FindByEmail(ctx, "user@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Test User", found.FullName)
	assert.Equal(t, "JP", found.Country)

	// 未登録のメールアドレスはErrUserNotFound
	_, err = repo.FindByEmail(ctx, "nobody@gmail.com")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}

func TestUserMySQL_FindByID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := adapters.NewUserMySQL(setupTestDB(t))

	created := &entity.User{Email: "user@gmail.com", Password: "hashed", FullName: "Test User"}
	require.NoError(t, repo.Create(ctx, created))

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "user@gmail.com", found.Email)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}
