package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", time.Hour)

	signed, err := gen.GenerateToken(42, "user@gmail.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	// 同じシークレットで検証できること
	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "user@gmail.com", claims["email"])

	// 有効期限がおよそ1時間後に設定されていること
	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), exp, 5)
}

func TestGenerateToken_DifferentSecretFailsVerification(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("secret-a", time.Hour)

	signed, err := gen.GenerateToken(1, "user@gmail.com")
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	assert.Error(t, err)
}
