package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/JastejS28/intel3/internal/adapters/cache"
	"github.com/JastejS28/intel3/internal/adapters/database"
	"github.com/JastejS28/intel3/internal/adapters/events"
	"github.com/JastejS28/intel3/internal/adapters/session"
	"github.com/JastejS28/intel3/internal/adapters/triage"
	"github.com/JastejS28/intel3/internal/api/handlers"
	"github.com/JastejS28/intel3/internal/api/routes"
	"github.com/JastejS28/intel3/internal/application/services"
	"github.com/JastejS28/intel3/internal/domain/providers"
	"github.com/JastejS28/intel3/internal/domain/repositories"
	"github.com/JastejS28/intel3/internal/infrastructure/clients/postgres"
	"github.com/JastejS28/intel3/internal/infrastructure/clients/queueassigner"
	"github.com/JastejS28/intel3/internal/infrastructure/clients/redis"
	"github.com/JastejS28/intel3/internal/infrastructure/observability"
	"github.com/JastejS28/intel3/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.App.Env)

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
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize Redis client. The service degrades to in-memory session
	// tracking without it, which is fine for a single kiosk node.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis client, using in-memory session store")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Session store: Redis-backed when available so markers survive restarts
	// and kiosks can share a node pool.
	var sessionStore repositories.SessionRepository
	if cacheProvider != nil {
		sessionStore = session.NewCacheSessionStore(cacheProvider, cfg.Session.TTL, cfg.Session.InFlightTTL)
	} else {
		sessionStore = session.NewMemorySessionStore(cfg.Session.InFlightTTL)
	}

	// Initialize event bus for real-time updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Event bus initialized successfully")
	} else {
		log.Info().Msg("Event bus disabled (Redis not available)")
	}

	// Optional Postgres-backed intake audit trail.
	var auditRepo repositories.IntakeAuditRepository
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize PostgreSQL client, intake audit disabled")
	} else {
		defer pgClient.Close()
		auditRepo = database.NewIntakeAuditAdapter(sqlx.NewDb(pgClient.DB(), "postgres"))
		log.Info().Msg("PostgreSQL client initialized successfully")
	}

	// Upstream queue assigner client shared by scoring and registration.
	assignerClient := queueassigner.NewClient(cfg.QueueAssigner.BaseURL, cfg.QueueAssigner.Timeout)
	scorer := triage.NewScorerAdapter(assignerClient)
	queueRegister := triage.NewQueueRegisterAdapter(assignerClient)

	// Initialize services
	intakeService := services.NewIntakeService(scorer, queueRegister, sessionStore)
	intakeService.SetMetrics(metrics)
	if eventBus != nil {
		intakeService.SetEventBus(eventBus)
	}
	if auditRepo != nil {
		intakeService.SetAuditRepository(auditRepo)
	}

	queueViewService := services.NewQueueViewService(queueRegister)
	queueViewService.SetMetrics(metrics)

	// Initialize handlers
	intakeHandler := handlers.NewIntakeHandler(intakeService, cfg.Session)
	queueHandler := handlers.NewQueueHandler(queueViewService)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
	}

	var auditHandler *handlers.AuditHandler
	if auditRepo != nil {
		auditHandler = handlers.NewAuditHandler(auditRepo)
	}

	// Set up router
	router := routes.NewRouter(intakeHandler, queueHandler, sseHandler, auditHandler, metrics)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}

	log.Info().Msg("Server stopped")
}
