package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avaintel/staffing-rates/internal/adapters/cache"
	"github.com/avaintel/staffing-rates/internal/adapters/database"
	"github.com/avaintel/staffing-rates/internal/adapters/geocoding"
	"github.com/avaintel/staffing-rates/internal/api/handlers"
	"github.com/avaintel/staffing-rates/internal/api/middleware"
	"github.com/avaintel/staffing-rates/internal/api/routes"
	"github.com/avaintel/staffing-rates/internal/application/services"
	"github.com/avaintel/staffing-rates/internal/domain/providers"
	"github.com/avaintel/staffing-rates/internal/infrastructure/clients/forecastapi"
	"github.com/avaintel/staffing-rates/internal/infrastructure/clients/postgres"
	"github.com/avaintel/staffing-rates/internal/infrastructure/clients/redis"
	"github.com/avaintel/staffing-rates/internal/infrastructure/observability"
	"github.com/avaintel/staffing-rates/pkg/config"
	"github.com/avaintel/staffing-rates/pkg/refdata"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	observability.InitLogger(cfg.OTEL.ServiceName, env)
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
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	logger.Info().Msg("PostgreSQL client initialized")

	// Initialize Redis client. The engine works without it; every resolver
	// just hits the store directly.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, continuing without caching")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		logger.Info().Msg("Redis client initialized")
	}

	// Reference data and adapters
	tables := refdata.Default()
	assignmentRepo := database.NewAssignmentAdapter(pgClient)
	geocoder := geocoding.NewStaticProvider(tables)
	forecastClient := forecastapi.NewClient(&cfg.Forecasting)

	// Initialize services
	marketRateService := services.NewMarketRateService(assignmentRepo, cacheProvider, cfg.Engine, metrics)
	rankingService := services.NewClientRankingService(assignmentRepo, marketRateService, cfg.Engine)
	comparableService := services.NewComparableJobsService(assignmentRepo, cfg.Engine)
	radiusService := services.NewRadiusSearchService(assignmentRepo, geocoder, cfg.Engine)
	trendService := services.NewTrendService(assignmentRepo, tables, cfg.Engine)
	forecastService := services.NewForecastService(forecastClient, tables, metrics)
	vendorService := services.NewVendorService(assignmentRepo, cfg.Engine)
	leadService := services.NewLeadService(assignmentRepo, cfg.Engine)

	// Initialize handlers
	rateHandler := handlers.NewRateHandler(marketRateService)
	clientHandler := handlers.NewClientHandler(rankingService)
	jobHandler := handlers.NewJobHandler(comparableService, radiusService)
	trendHandler := handlers.NewTrendHandler(trendService)
	forecastHandler := handlers.NewForecastHandler(forecastService)
	vendorHandler := handlers.NewVendorHandler(vendorService)
	leadHandler := handlers.NewLeadHandler(leadService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		logger.Info().Msg("cache middleware initialized")
	}

	// Set up router
	router := routes.NewRouter(
		rateHandler,
		clientHandler,
		jobHandler,
		trendHandler,
		forecastHandler,
		vendorHandler,
		leadHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server stopped")
}
