package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/practiq/backend/internal/application/identity"
	"github.com/practiq/backend/internal/interfaces/http/middleware"
)

// AuthHandler serves login, token refresh and session management
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *appidentity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid login request: "+err.Error())
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req appidentity.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid refresh request: "+err.Error())
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.GetClaims(c)); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// LogoutEverywhere handles POST /api/v1/auth/logout-all
func (h *AuthHandler) LogoutEverywhere(c *gin.Context) {
	if err := h.authService.LogoutEverywhere(c.Request.Context(), middleware.GetClaims(c)); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.authService.CurrentUser(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// ChangePassword handles POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req appidentity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid change password request: "+err.Error())
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), middleware.GetClaims(c), req); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
