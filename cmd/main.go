package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ymoumine/RentalAI/internal/adapter/backend"
	"github.com/ymoumine/RentalAI/internal/adapter/cache/noop"
	redisCache "github.com/ymoumine/RentalAI/internal/adapter/cache/redis"
	natsAdapter "github.com/ymoumine/RentalAI/internal/adapter/nats"
	"github.com/ymoumine/RentalAI/internal/config"
	dashboardUsecase "github.com/ymoumine/RentalAI/internal/dashboard/usecase"
	"github.com/ymoumine/RentalAI/internal/handler"
	listingUsecase "github.com/ymoumine/RentalAI/internal/listing/usecase"
	"github.com/ymoumine/RentalAI/internal/middleware"
	"github.com/ymoumine/RentalAI/internal/platform/logger"
	"github.com/ymoumine/RentalAI/internal/platform/metrics"
	"github.com/ymoumine/RentalAI/internal/platform/tracer"
	"github.com/ymoumine/RentalAI/internal/platform/validator"
	"github.com/ymoumine/RentalAI/internal/port/cache"
	"github.com/ymoumine/RentalAI/internal/port/events"
	predictionUsecase "github.com/ymoumine/RentalAI/internal/prediction/usecase"
	"github.com/ymoumine/RentalAI/internal/router"
	"github.com/ymoumine/RentalAI/internal/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	appLogger := logger.NewLogger()
	defer func() { _ = appLogger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Configuration loaded successfully",
		zap.String("service_name", cfg.ServiceName),
		zap.Int("port", cfg.Port),
		zap.String("backend_api_url", cfg.BackendAPIURL),
		zap.String("ml_api_url", cfg.MLAPIURL),
		zap.Bool("redis_enabled", cfg.RedisAddress != ""),
		zap.Bool("nats_enabled", cfg.NATSURL != ""),
	)

	var tp *sdktrace.TracerProvider
	if cfg.OTExporterOTLPEndpoint != "" {
		tp = tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)
		defer func() {
			ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			if err := tp.Shutdown(ctxShutdown); err != nil {
				appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	} else {
		appLogger.Info("OpenTelemetry Tracer not initialized (OTEL_EXPORTER_OTLP_ENDPOINT not set).")
	}

	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)
	go func() {
		if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Prometheus metrics server failed", zap.Error(err))
		}
	}()

	var payloadCache cache.CacheRepository = noop.New()
	if cfg.RedisAddress != "" {
		rdb, err := redisCache.NewRedisClient(context.Background(), redisCache.Options{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, appLogger)
		if err != nil {
			appLogger.Warn("Redis unavailable, upstream payloads will not be cached", zap.Error(err))
		} else {
			defer rdb.Close()
			payloadCache = redisCache.NewRedisCacheRepository(rdb, appLogger)
		}
	}

	var publisher events.Publisher = natsAdapter.NopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := natsAdapter.NewNATSPublisher(cfg.NATSURL, 5*time.Second, appLogger)
		if err != nil {
			appLogger.Warn("NATS unavailable, prediction events will not be published", zap.Error(err))
		} else {
			defer natsPublisher.Close()
			publisher = natsPublisher
		}
	}

	backendClient := backend.NewClient(backend.Options{
		BackendURL:    cfg.BackendAPIURL,
		MLURL:         cfg.MLAPIURL,
		PredictionURL: cfg.PredictionAPIURL,
		Timeout:       cfg.HTTPClientTimeout,
		CacheTTL:      cfg.CacheTTL,
		Cache:         payloadCache,
	}, metricsManager, appLogger)

	listingUC := listingUsecase.NewListingUsecase(backendClient, listingUsecase.NewNormalizer(appLogger),
		cfg.ItemsPerPage, metricsManager, appLogger)
	dashboardUC := dashboardUsecase.NewDashboardUsecase(listingUC, backendClient, appLogger)
	predictionUC := predictionUsecase.NewPredictionUsecase(backendClient, publisher, validator.New(), metricsManager, appLogger)

	renderer, err := web.NewRenderer()
	if err != nil {
		appLogger.Fatal("Failed to parse page templates", zap.Error(err))
	}

	pageHandler := handler.NewPageHandler(renderer, appLogger)
	listingHandler := handler.NewListingHandler(listingUC, cfg.ListingBaseURL, renderer, appLogger)
	dashboardHandler := handler.NewDashboardHandler(dashboardUC, renderer, appLogger)
	predictionHandler := handler.NewPredictionHandler(predictionUC, renderer, appLogger)
	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.PredictionRateLimit), cfg.PredictionRateBurst, appLogger)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(appLogger))
	r.Use(middleware.Metrics(metricsManager))
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)
	router.SetupPageRoutes(r, pageHandler, listingHandler, dashboardHandler, predictionHandler, limiter)
	router.SetupAPIRoutes(r, listingHandler, dashboardHandler, predictionHandler, limiter)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Starting RentalAI web server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Application shutting down...")
}
