// Package router wires the gin engine, middleware and routes.
package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/practiq/backend/internal/domain/identity"
	"github.com/practiq/backend/internal/infrastructure/auth"
	"github.com/practiq/backend/internal/infrastructure/config"
	"github.com/practiq/backend/internal/infrastructure/logger"
	"github.com/practiq/backend/internal/interfaces/http/handler"
	"github.com/practiq/backend/internal/interfaces/http/middleware"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Client     *handler.ClientHandler
	Portfolio  *handler.PortfolioHandler
	Engagement *handler.EngagementHandler
	Filing     *handler.FilingHandler
	Document   *handler.DocumentHandler
	Dashboard  *handler.DashboardHandler
	Assistant  *handler.AssistantHandler
	Company    *handler.CompanyHandler
}

// Dependencies carries the cross-cutting pieces middleware needs
type Dependencies struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist
}

// New builds the gin engine with all middleware and routes mounted
func New(deps Dependencies, h Handlers) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if len(deps.Config.HTTP.TrustedProxies) > 0 {
		_ = r.SetTrustedProxies(deps.Config.HTTP.TrustedProxies)
	}

	r.Use(middleware.RequestID())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(logger.Recovery(deps.Logger))
	r.Use(otelgin.Middleware(deps.Config.Telemetry.ServiceName))
	r.Use(middleware.CORS(deps.Config.HTTP))
	r.Use(middleware.BodyLimit(deps.Config.HTTP.MaxBodySize))

	r.GET("/health", h.Health.Health)

	v1 := r.Group("/api/v1")

	// Unauthenticated auth endpoints
	v1.POST("/auth/login", h.Auth.Login)
	v1.POST("/auth/refresh", h.Auth.Refresh)

	authed := v1.Group("", middleware.Auth(deps.JWTService, deps.Blacklist))

	authed.POST("/auth/logout", h.Auth.Logout)
	authed.POST("/auth/logout-all", h.Auth.LogoutEverywhere)
	authed.GET("/auth/me", h.Auth.Me)
	authed.POST("/auth/change-password", h.Auth.ChangePassword)

	// Staff administration is partner-only
	partners := authed.Group("", middleware.RequireRole(string(identity.RolePartner)))
	partners.POST("/users", h.User.Create)
	partners.GET("/users", h.User.List)
	partners.GET("/users/:id", h.User.Get)
	partners.PUT("/users/:id", h.User.Update)
	partners.POST("/users/:id/unlock", h.User.Unlock)
	partners.DELETE("/users/:id", h.User.Deactivate)

	authed.POST("/clients", h.Client.Create)
	authed.GET("/clients", h.Client.List)
	authed.GET("/clients/:ref", h.Client.Get)
	authed.PUT("/clients/:ref", h.Client.Update)
	authed.DELETE("/clients/:ref", h.Client.Delete)
	authed.POST("/clients/:ref/reassign-ref", h.Client.ReassignRef)
	authed.POST("/clients/:ref/refresh-registry", h.Client.RefreshFromRegistry)

	authed.POST("/portfolios", h.Portfolio.Create)
	authed.GET("/portfolios", h.Portfolio.List)
	authed.GET("/portfolios/:code", h.Portfolio.Get)
	authed.PUT("/portfolios/:code", h.Portfolio.Rename)

	authed.POST("/services", h.Engagement.CreateService)
	authed.GET("/services", h.Engagement.ListServices)
	authed.POST("/clients/:ref/engagements", h.Engagement.Engage)
	authed.GET("/clients/:ref/engagements", h.Engagement.ListForClient)
	authed.POST("/engagements/:id/end", h.Engagement.End)

	authed.GET("/filings", h.Filing.List)
	authed.POST("/clients/:ref/filings", h.Filing.Create)
	authed.GET("/clients/:ref/filings", h.Filing.ListForClient)
	authed.PUT("/filings/:id/status", h.Filing.UpdateStatus)

	authed.POST("/clients/:ref/documents", h.Document.InitiateUpload)
	authed.GET("/clients/:ref/documents", h.Document.ListForClient)
	authed.POST("/documents/:id/confirm", h.Document.ConfirmUpload)
	authed.GET("/documents/:id/download", h.Document.Download)
	authed.DELETE("/documents/:id", h.Document.Delete)

	authed.GET("/dashboard", h.Dashboard.Summary)

	if h.Assistant != nil {
		authed.POST("/assistant/chat", h.Assistant.Chat)
	}
	if h.Company != nil {
		authed.GET("/companies/:number", h.Company.Lookup)
	}

	return r
}
