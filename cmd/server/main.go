package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shortener/internal/config"
	httpHandler "shortener/internal/handler/http"
	"shortener/internal/ratelimit"
	"shortener/internal/repository/postgres"
	redisrepo "shortener/internal/repository/redis"
	"shortener/internal/service"
	"shortener/pkg/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg.App.LogLevel)
	appLogger.Info("Starting URL shortener",
		"environment", cfg.App.Environment,
		"port", cfg.Server.Port,
	)

	ctx := context.Background()
	db, err := postgres.InitDB(
		ctx,
		cfg.Database.DatabaseDSN(),
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
		cfg.Database.ConnMaxLifetime,
	)
	if err != nil {
		appLogger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		appLogger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Migration failed: %v", err)
	}
	appLogger.Info("Database connection established")

	// Redis backs the resolve cache and the rate limiter. Both are
	// optimizations; the service stays correct without them.
	var cache service.Cache
	var limiter *ratelimit.RateLimiter
	if cfg.Redis.Enabled {
		redisClient, err := redisrepo.InitRedis(cfg.Redis.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without cache and rate limiting", "error", err)
		} else {
			defer redisClient.Close()
			cache = redisrepo.NewCache(redisClient, cfg.Redis.CacheTTL)
			if cfg.App.RateLimitEnabled {
				limiter = ratelimit.NewFixedWindowLimiter(redisClient, cfg.App.RateLimitPerMinute, time.Minute)
			}
			appLogger.Info("Redis connection established")
		}
	}

	urlRepo := postgres.NewURLRepository(db)
	urlService := service.NewURLService(urlRepo, cache, cfg.App.ShortCodeLength)
	handler := httpHandler.NewHandler(urlService, appLogger.Logger, cfg.App.BaseURL)

	mux := http.NewServeMux()

	var shorten http.Handler = http.HandlerFunc(handler.Shorten)
	if limiter != nil {
		shorten = httpHandler.RateLimitMiddleware(limiter, appLogger.Logger)(shorten)
	}
	mux.Handle("/shorten/", shorten)

	mux.HandleFunc("/health/live", handler.HealthCheck)
	mux.Handle("/metrics", promhttp.Handler())

	// Must be registered last: "/" matches everything, and every path that
	// is not an API route is treated as a short code.
	mux.HandleFunc("/", handler.Redirect)

	finalHandler := httpHandler.Chain(
		httpHandler.RecoveryMiddleware(appLogger.Logger),
		httpHandler.LoggingMiddleware(appLogger.Logger),
		httpHandler.RequestIDMiddleware,
	)(mux)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      finalHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", "error", err)
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	appLogger.Info("Server exited gracefully")
}
