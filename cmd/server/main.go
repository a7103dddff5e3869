package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4" // Echo web framework
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iliyamo/items-service/internal/app"
	"github.com/iliyamo/items-service/internal/config" // Internal config loader
	"github.com/iliyamo/items-service/internal/database"
	"github.com/iliyamo/items-service/internal/handler"
	"github.com/iliyamo/items-service/internal/metrics"
	"github.com/iliyamo/items-service/internal/middleware"
	"github.com/iliyamo/items-service/internal/repository"
	"github.com/iliyamo/items-service/internal/router" // Internal router setup
	"github.com/iliyamo/items-service/internal/service"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	dbURL := cfg.Database.URL()
	logger.Info("starting items-service",
		zap.String("env", cfg.Env),
		zap.String("database", database.Redact(dbURL)))

	repo := repository.NewItemRepo(dbURL)
	application := app.New(repo, logger)
	application.Startup(context.Background())

	collector := metrics.NewCollector()
	publisher := service.NewPublisher(cfg.Broker.Address(), logger)

	var rdb *redis.Client
	if cfg.RateLimit.Enabled {
		if rdb = config.NewRedisClient(cfg.Redis); rdb == nil {
			logger.Warn("redis unreachable; rate limiting disabled", zap.String("addr", cfg.Redis.Address()))
		}
	}

	items := handler.NewItemHandler(repo, publisher, collector, logger)

	e := echo.New()
	router.Setup(e, logger, collector)
	router.RegisterRoutes(e, handler.NewHealthHandler(application, repo, logger))
	router.RegisterItems(e, items, middleware.NewTokenBucket(cfg.RateLimit, rdb, logger))
	router.RegisterMetrics(e, collector)

	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr()))
		if err := e.Start(cfg.HTTPAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	if err := items.Wait(ctx); err != nil {
		logger.Warn("pending item events abandoned", zap.Error(err))
	}
	application.Shutdown()
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("Redis close error", zap.Error(err))
		}
	}
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	return logger
}
