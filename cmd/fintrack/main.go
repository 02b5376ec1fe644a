package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/backend"
	"fintrack/internal/cache"
	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/core"
	apphttp "fintrack/internal/http"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

func main() {
	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(cfg, log.ComponentApp)
	cli.ValidateConfig(logger, cfg, config.RoleServer)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	if err := repo.SeedCategories(context.Background(), core.DefaultCatalog()); err != nil {
		logger.Error("Failed to seed categories", log.FieldError, err)
		os.Exit(1)
	}

	// Ledger events are optional; without a broker the export sink is not fed.
	var publisher services.EventPublisher
	amqpClient, err := backend.ConnectAMQP(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	if amqpClient != nil {
		defer amqpClient.Close()
		publisher = amqpClient
	} else {
		logger.Info("AMQP disabled - ledger events will not be published")
	}

	caches := cache.NewManager(logger)
	reports := cache.NewLRUCache[core.Report](cfg.CacheSize, cfg.CacheTTL)
	caches.Register(reports)
	caches.StartCleanup(time.Minute)

	deps := services.Deps{
		Publisher: publisher,
		Clock:     services.NewClock(cfg.Location()),
		Logger:    logger,
	}
	analytics := services.NewAnalyticsService(repo, reports, deps)
	deps.Invalidator = analytics

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Services{
		Ledger:    services.NewLedgerService(repo, core.DefaultCatalog(), deps),
		Shopping:  services.NewShoppingService(repo, deps),
		Goals:     services.NewGoalService(repo, deps),
		Habits:    services.NewHabitService(repo, deps),
		Accounts:  services.NewAccountService(repo, deps),
		Analytics: analytics,
	}, apphttp.Options{
		Verifier:           auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer),
		Store:              repo,
		Logger:             logger,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Caches:             caches,
	})

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
	})

	logger.Info("Starting fintrack server",
		"port", cfg.Port,
		"timezone", cfg.AppTimezone,
		"amqp", cfg.AMQPEnabled())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
