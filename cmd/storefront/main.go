package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/storefront-console/internal/api"
	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/cache"
	"github.com/aaravmahajanofficial/storefront-console/internal/config"
	"github.com/aaravmahajanofficial/storefront-console/internal/health"
	repository "github.com/aaravmahajanofficial/storefront-console/internal/repositories"
	service "github.com/aaravmahajanofficial/storefront-console/internal/services"
	"github.com/aaravmahajanofficial/storefront-console/internal/sessions"
	"github.com/aaravmahajanofficial/storefront-console/internal/telemetry"
	"github.com/joho/godotenv"
)

//	@title			Storefront Console API
//	@version		1.0
//	@description	Backend-for-frontend serving the storefront and admin console UI.
//	@host			localhost:3000
//	@BasePath		/api/v1

func main() {

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using system environment")
	}

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Otel, cfg.Env)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.Any("error", err))
		os.Exit(1)
	}

	// Redis setup: session snapshots, category cache and login throttling
	var (
		store   cache.Cache
		limiter repository.RateLimitRepository
	)
	if cfg.RedisConnect.Enabled {
		redisClient, err := repository.NewRedisClient(cfg.RedisConnect)
		if err != nil {
			slog.Error("❌ Error accessing the redis instance", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("⚠️ Error closing redis connection", slog.Any("error", err))
			}
		}()

		store = cache.NewRedisCache(redisClient, &cfg.Cache)
		limiter = repository.NewRateLimitRepo(redisClient, cfg.RateConfig)
	} else {
		slog.Warn("Redis disabled, sessions live in memory only and login attempts are not throttled")
	}

	backendClient, err := backend.NewClient(cfg.Backend)
	if err != nil {
		slog.Error("❌ Error configuring the backend client", slog.Any("error", err))
		os.Exit(1)
	}

	validate := service.NewValidator(time.Now)

	registry := sessions.NewRegistry(backendClient, validate, store, limiter, cfg.Session)
	go registry.Run(ctx)

	ipLimiter := middleware.NewIPRateLimiter(cfg.RateConfig.RequestsPerSec, cfg.RateConfig.Burst)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				ipLimiter.Prune(10 * time.Minute)
			}
		}
	}()

	healthChecker, err := health.NewHealthHandler(cfg, &health.Endpoints{Backend: backendClient})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.Any("error", err))
		os.Exit(1)
	}

	handler := api.NewRouter(api.Deps{
		Registry:  registry,
		Codec:     middleware.NewSessionCodec(cfg.Session.Secret, cfg.Session.TTL),
		Limiter:   ipLimiter,
		Validator: validate,
		Media:     backendClient,
		Catalog:   service.NewCatalogService(backendClient, store),
		Orders:    service.NewOrderService(backendClient),
		Refunds:   service.NewRefundService(backendClient, backendClient),
		Addresses: service.NewAddressService(backendClient),
		Admin:     service.NewAdminService(backendClient, backendClient, backendClient),
		Health:    healthChecker.Handler(),
	}, cfg.CORS, cfg.Otel.ServiceName)

	slog.Info("storefront initialized", slog.String("env", cfg.Env), slog.String("backend", cfg.Backend.BaseURL), slog.String("version", "1.0.0"))

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.Any("error", err))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown encountered an issue", slog.Any("error", err))
	}
}
