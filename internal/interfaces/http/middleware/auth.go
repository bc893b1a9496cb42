package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/practiq/backend/internal/infrastructure/auth"
	"github.com/practiq/backend/internal/infrastructure/logger"
	"github.com/practiq/backend/internal/interfaces/http/dto"
)

// claimsKey is the gin context key for validated JWT claims
const claimsKey = "auth_claims"

// Auth validates the bearer token, rejects blacklisted or revoked
// tokens and stores the claims on the context
func Auth(jwtService *auth.JWTService, blacklist auth.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "TOKEN_INVALID", "Missing or malformed Authorization header")
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "TOKEN_EXPIRED", "Access token has expired")
				return
			}
			abortUnauthorized(c, "TOKEN_INVALID", "Access token is invalid")
			return
		}

		ctx := c.Request.Context()
		if blacklisted, err := blacklist.IsBlacklisted(ctx, claims.ID); err != nil || blacklisted {
			abortUnauthorized(c, "TOKEN_REVOKED", "Access token has been revoked")
			return
		}
		if claims.IssuedAt != nil {
			invalidated, err := blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.IssuedAt.Time)
			if err != nil || invalidated {
				abortUnauthorized(c, "TOKEN_REVOKED", "Access token has been revoked")
				return
			}
		}

		c.Set(claimsKey, claims)

		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole allows the request through only when the token's role is
// one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			abortUnauthorized(c, "TOKEN_INVALID", "Authentication required")
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse(dto.CodeForbidden, "Insufficient role for this operation", GetRequestID(c)))
	}
}

// GetClaims returns the validated claims for the current request, or
// nil outside the auth middleware
func GetClaims(c *gin.Context) *auth.Claims {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message, GetRequestID(c)))
}
