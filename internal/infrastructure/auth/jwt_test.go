package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-test-access-secret",
		RefreshSecret:          "test-refresh-secret-test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "practiq-test",
		MaxRefreshCount:        3,
	})
}

func TestJWTService_GenerateTokenPair(t *testing.T) {
	svc := testJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:   userID,
		Username: "jane",
		Role:     "manager",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "jane", claims.Username)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "practiq-test", claims.Issuer)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	svc := testJWTService()

	t.Run("rejects a garbage token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a refresh token used as access", func(t *testing.T) {
		pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Username: "jane", Role: "staff"})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidToken) // different signing secret
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "another-secret-another-secret-another",
			AccessTokenExpiration:  time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "practiq-test",
		})
		pair, err := other.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Username: "jane", Role: "staff"})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                 "test-access-secret-test-access-secret",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "practiq-test",
		})
		pair, err := expired.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Username: "jane", Role: "staff"})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	svc := testJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: userID, Username: "jane", Role: "staff"})
	require.NoError(t, err)

	t.Run("issues a fresh pair and bumps the count", func(t *testing.T) {
		refreshed, err := svc.RefreshTokenPair(pair.RefreshToken, "manager")
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(refreshed.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "manager", claims.Role, "role change applies on refresh")

		refreshClaims, err := svc.ValidateRefreshToken(refreshed.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, 1, refreshClaims.RefreshCount)
	})

	t.Run("rejects an access token", func(t *testing.T) {
		_, err := svc.RefreshTokenPair(pair.AccessToken, "staff")
		assert.Error(t, err)
	})

	t.Run("stops at the max refresh count", func(t *testing.T) {
		current := pair
		for i := 0; i < 3; i++ {
			next, err := svc.RefreshTokenPair(current.RefreshToken, "staff")
			require.NoError(t, err)
			current = next
		}

		_, err := svc.RefreshTokenPair(current.RefreshToken, "staff")
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	svc := testJWTService()
	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Username: "jane", Role: "staff"})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 14*time.Minute)
	assert.LessOrEqual(t, ttl, 15*time.Minute)
}
