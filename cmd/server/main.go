package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	appassistant "github.com/practiq/backend/internal/application/assistant"
	appclient "github.com/practiq/backend/internal/application/client"
	appcompliance "github.com/practiq/backend/internal/application/compliance"
	appdashboard "github.com/practiq/backend/internal/application/dashboard"
	appdocument "github.com/practiq/backend/internal/application/document"
	appengagement "github.com/practiq/backend/internal/application/engagement"
	appidentity "github.com/practiq/backend/internal/application/identity"
	"github.com/practiq/backend/internal/infrastructure/assistant"
	"github.com/practiq/backend/internal/infrastructure/auth"
	"github.com/practiq/backend/internal/infrastructure/cache"
	"github.com/practiq/backend/internal/infrastructure/companieshouse"
	"github.com/practiq/backend/internal/infrastructure/config"
	"github.com/practiq/backend/internal/infrastructure/logger"
	"github.com/practiq/backend/internal/infrastructure/persistence"
	"github.com/practiq/backend/internal/infrastructure/storage"
	"github.com/practiq/backend/internal/infrastructure/telemetry"
	"github.com/practiq/backend/internal/interfaces/http/handler"
	"github.com/practiq/backend/internal/interfaces/http/router"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting practice backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracer, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis backs both the token blacklist and the assistant reply
	// cache. When it is unreachable we fall back to in-process stores
	// so a single-node deployment still works.
	var blacklist auth.TokenBlacklist
	var replyCache appassistant.ReplyCache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist and reply cache", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
		replyCache = cache.NewMemoryReplyCache()
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		replyCache = cache.NewRedisReplyCache(redisClient, log)
		log.Info("Redis connected")
	}

	// Repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	_ = persistence.NewGormRefBucketRepository(db.DB)
	portfolioRepo := persistence.NewGormPortfolioRepository(db.DB)
	serviceRepo := persistence.NewGormServiceRepository(db.DB)
	engagementRepo := persistence.NewGormEngagementRepository(db.DB)
	filingRepo := persistence.NewGormFilingRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Document storage
	var objectStorage appdocument.ObjectStorageService
	if cfg.Storage.Enabled {
		objectStorage, err = storage.NewS3ObjectStorage(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		log.Info("Object storage configured", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage disabled, document uploads will be rejected")
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := appidentity.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := appidentity.NewUserService(userRepo, log)
	clientService := appclient.NewService(clientRepo, portfolioRepo, txScope)
	portfolioService := appclient.NewPortfolioService(portfolioRepo, clientRepo)
	engagementService := appengagement.NewService(engagementRepo, serviceRepo, clientRepo)
	filingService := appcompliance.NewService(filingRepo, clientRepo)
	documentService := appdocument.NewService(documentRepo, clientRepo, objectStorage)
	dashboardService := appdashboard.NewService(clientRepo, portfolioRepo, filingRepo)

	var lookupService *appclient.CompanyLookupService
	if cfg.CompaniesHouse.Enabled {
		gateway := companieshouse.NewClient(cfg.CompaniesHouse)
		lookupService = appclient.NewCompanyLookupService(gateway, clientRepo)
		log.Info("Companies House lookups enabled")
	}

	var assistantService *appassistant.Service
	if cfg.Assistant.Enabled {
		provider, err := assistant.NewProvider(cfg.Assistant)
		if err != nil {
			log.Fatal("Failed to initialize assistant provider", zap.Error(err))
		}
		assistantService = appassistant.NewService(provider, replyCache, clientRepo)
		log.Info("Assistant enabled", zap.String("provider", provider.Name()))
	}

	// HTTP handlers
	handlers := router.Handlers{
		Health:     handler.NewHealthHandler(db, version),
		Auth:       handler.NewAuthHandler(authService),
		User:       handler.NewUserHandler(userService),
		Client:     handler.NewClientHandler(clientService, lookupService),
		Portfolio:  handler.NewPortfolioHandler(portfolioService),
		Engagement: handler.NewEngagementHandler(engagementService),
		Filing:     handler.NewFilingHandler(filingService),
		Document:   handler.NewDocumentHandler(documentService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
	}
	if assistantService != nil {
		handlers.Assistant = handler.NewAssistantHandler(assistantService)
	}
	if lookupService != nil {
		handlers.Company = handler.NewCompanyHandler(lookupService)
	}

	engine := router.New(router.Dependencies{
		Config:     cfg,
		Logger:     log,
		JWTService: jwtService,
		Blacklist:  blacklist,
	}, handlers)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
