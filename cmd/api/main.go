package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medisense/backend/internal/adapters/cache"
	"github.com/medisense/backend/internal/adapters/events"
	"github.com/medisense/backend/internal/adapters/ledger"
	"github.com/medisense/backend/internal/adapters/reference"
	"github.com/medisense/backend/internal/adapters/sessions"
	"github.com/medisense/backend/internal/api/handlers"
	"github.com/medisense/backend/internal/api/middleware"
	"github.com/medisense/backend/internal/api/routes"
	"github.com/medisense/backend/internal/application/services"
	"github.com/medisense/backend/internal/application/workflow"
	"github.com/medisense/backend/internal/domain/providers"
	"github.com/medisense/backend/internal/domain/repositories"
	"github.com/medisense/backend/internal/infrastructure/clients/redis"
	"github.com/medisense/backend/internal/infrastructure/observability"
	"github.com/medisense/backend/internal/mcp"
	"github.com/medisense/backend/pkg/config"
	"github.com/medisense/backend/pkg/retry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		observability.InitLogger("medisense-vellore", "development")
		observability.GetLogger().Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			observability.EnableLogBridge(cfg.OTEL.ServiceName)
			logger = observability.GetLogger()
			logger.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Shared state: Redis when enabled, in-process otherwise
	var (
		cacheProvider providers.CacheProvider
		eventBus      providers.EventBus
		sessionRepo   repositories.SessionRepository
	)
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis, retry.DefaultConfig())
		if err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.RedisAddr()).
				Msg("Failed to initialize Redis client, falling back to in-memory state")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient)
			eventBus = events.NewRedisEventBus(redisClient)
			sessionRepo = sessions.NewCacheStore(cacheProvider, cfg.Session.TTL)
			logger.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis client initialized")
		}
	}
	if cacheProvider == nil {
		cacheProvider = cache.NewMemoryAdapter()
		eventBus = events.NewMemoryEventBus()
		sessionRepo = sessions.NewMemoryStore()
		logger.Info().Msg("Using in-memory cache, sessions and event bus")
	}

	// Reference data and ledger
	conditions := reference.NewConditionCatalog()
	directory := reference.NewProviderDirectory()
	areas := reference.NewAreaTable()
	bookingLedger := ledger.NewSeededLedger()

	// Initialize services
	inferenceService := services.NewInferenceService(conditions)
	rankingService := services.NewRankingService(directory)
	locationService := services.NewLocationService(areas)
	bookingService := services.NewBookingService(bookingLedger, eventBus, metrics)
	adminService := services.NewAdminService(cfg.Admin.Mobile, bookingLedger, conditions, directory, metrics)
	sessionService := services.NewSessionService(
		sessionRepo,
		workflow.NewMachine(),
		locationService,
		inferenceService,
		rankingService,
		bookingService,
		adminService,
		metrics,
		services.AnalysisPacing{Tick: cfg.Analysis.Tick, Settle: cfg.Analysis.Settle},
	)

	sweeper, err := services.NewSessionSweeper(sessionService, cfg.Session.SweepSchedule, cfg.Session.TTL)
	if err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.Session.SweepSchedule).Msg("Invalid session sweep schedule")
	}
	sweeper.Start()

	mcpServer := mcp.NewServer(inferenceService, rankingService, locationService, cfg.OTEL.ServiceVersion)

	// Set up router
	router := routes.NewRouter(
		routes.Handlers{
			Catalog:   handlers.NewCatalogHandler(conditions, locationService),
			Provider:  handlers.NewProviderHandler(directory, rankingService, locationService),
			Diagnosis: handlers.NewDiagnosisHandler(inferenceService),
			Location:  handlers.NewLocationHandler(locationService),
			Session:   handlers.NewSessionHandler(sessionService),
			Admin:     handlers.NewAdminHandler(bookingService, adminService),
			SSE:       handlers.NewSSEHandler(eventBus),
		},
		routes.Options{
			AdminChecker:   sessionService,
			MCPServer:      mcpServer.GetMCPServer(),
			Cache:          middleware.NewCacheMiddleware(cacheProvider, middleware.DefaultCacheRoutes),
			Metrics:        metrics,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		},
	)

	// Create HTTP server. No write timeout: the admin stream and MCP SSE stay open.
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Server shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}

	sweeper.Stop(shutdownCtx)
	sessionService.Shutdown()

	if err := eventBus.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing event bus")
	}

	logger.Info().Msg("Server stopped")
}
