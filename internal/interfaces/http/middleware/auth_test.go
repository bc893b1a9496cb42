package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/practiq/backend/internal/infrastructure/auth"
	"github.com/practiq/backend/internal/infrastructure/config"
)

func newAuthRig(t *testing.T) (*auth.JWTService, *auth.InMemoryTokenBlacklist, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-test-secret-test-secret!",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "practiq-test",
		MaxRefreshCount:        3,
	})

	blacklist := auth.NewInMemoryTokenBlacklist()

	r := gin.New()
	r.Use(RequestID())
	protected := r.Group("/", Auth(jwtService, blacklist))
	protected.GET("/me", func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID, "role": claims.Role})
	})
	protected.GET("/admin", RequireRole("partner"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return jwtService, blacklist, r
}

func issueToken(t *testing.T, jwtService *auth.JWTService, role string) (*auth.TokenPair, *auth.Claims) {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "jane",
		Role:     role,
	})
	require.NoError(t, err)
	claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	return pair, claims
}

func TestAuth(t *testing.T) {
	t.Run("accepts a valid bearer token", func(t *testing.T) {
		jwtService, _, r := newAuthRig(t)
		pair, _ := issueToken(t, jwtService, "staff")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		_, _, r := newAuthRig(t)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_INVALID")
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		_, _, r := newAuthRig(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a blacklisted token", func(t *testing.T) {
		jwtService, blacklist, r := newAuthRig(t)
		pair, claims := issueToken(t, jwtService, "staff")
		require.NoError(t, blacklist.AddToBlacklist(t.Context(), claims.ID, time.Minute))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
	})

	t.Run("rejects tokens issued before a user-wide logout", func(t *testing.T) {
		jwtService, blacklist, r := newAuthRig(t)
		pair, claims := issueToken(t, jwtService, "staff")
		require.NoError(t, blacklist.AddUserTokensToBlacklist(t.Context(), claims.UserID, time.Minute))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("allows a matching role", func(t *testing.T) {
		jwtService, _, r := newAuthRig(t)
		pair, _ := issueToken(t, jwtService, "partner")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forbids other roles", func(t *testing.T) {
		jwtService, _, r := newAuthRig(t)
		pair, _ := issueToken(t, jwtService, "staff")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
