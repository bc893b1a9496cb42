package identity

import (
	"context"
	"errors"
	"time"

	"github.com/practiq/backend/internal/domain/identity"
	"github.com/practiq/backend/internal/domain/shared"
	"github.com/practiq/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.Repository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.Repository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Warn("Login attempt for unknown user", zap.String("username", req.Username))
		// Same error as a bad password so usernames cannot be probed
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	now := time.Now()
	if !user.CanLogin(now) {
		if user.Status == identity.UserStatusDeactivated {
			s.logger.Warn("Login attempt for deactivated account", zap.String("username", user.Username))
			return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
		}
		s.logger.Warn("Login attempt for locked account", zap.String("username", user.Username))
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Try again later")
	}

	if !user.VerifyPassword(req.Password) {
		user.RecordFailedLogin()
		if err := s.userRepo.Save(ctx, user); err != nil {
			s.logger.Error("Failed to record login failure", zap.Error(err))
		}

		if user.Status == identity.UserStatusLocked {
			s.logger.Warn("Account locked after repeated failures",
				zap.String("username", user.Username),
				zap.Int("failed_attempts", user.FailedAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// The login itself succeeded, only the bookkeeping failed
		s.logger.Error("Failed to record login", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  ToUserResponse(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate refresh token")
	}
	if !revoked {
		revoked, err = s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.IssuedAt.Time)
		if err != nil {
			s.logger.Error("Failed to check user token invalidation", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate refresh token")
		}
	}
	if revoked {
		return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if !user.CanLogin(time.Now()) {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	// Role is re-read so a role change takes effect at the next refresh
	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, string(user.Role))
	if err != nil {
		return nil, mapTokenError(err)
	}

	// One refresh token, one use
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist rotated refresh token", zap.Error(err))
	}

	s.logger.Info("Token refreshed", zap.String("user_id", user.ID.String()))

	return &TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}, nil
}

// Logout revokes the presented access token
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist token on logout", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}

	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// LogoutEverywhere revokes every token issued to the user so far
func (s *AuthService) LogoutEverywhere(ctx context.Context, claims *auth.Claims) error {
	// TTL covers the longest-lived outstanding token, the refresh token
	ttl := s.jwtService.GetAccessTokenExpiration()
	if refreshTTL := claims.GetRemainingTTL(); refreshTTL > ttl {
		ttl = refreshTTL
	}
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, claims.UserID, ttl); err != nil {
		s.logger.Error("Failed to invalidate user tokens", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}

	s.logger.Info("User logged out everywhere", zap.String("user_id", claims.UserID))
	return nil
}

// CurrentUser returns the signed-in user's profile
func (s *AuthService) CurrentUser(ctx context.Context, claims *auth.Claims) (*UserResponse, error) {
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword changes the signed-in user's password
func (s *AuthService) ChangePassword(ctx context.Context, claims *auth.Claims, req ChangePasswordRequest) error {
	userID, err := claims.GetUserUUID()
	if err != nil {
		return shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if !user.VerifyPassword(req.CurrentPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	if err := user.ChangePassword(req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	s.logger.Info("Password changed", zap.String("user_id", user.ID.String()))
	return nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Log in again")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
}
