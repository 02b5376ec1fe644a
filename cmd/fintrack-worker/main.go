package main

import (
	"context"
	"errors"
	"os"
	"time"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(cfg, log.ComponentWorker)
	cli.ValidateConfig(logger, cfg, config.RoleWorker)

	logger.Info("Starting fintrack-worker", "sink", cfg.ExportSink)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	sinkCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid export sink configuration", log.FieldError, err)
		os.Exit(1)
	}
	sink, err := backend.NewFactory(logger).CreateSink(context.Background(), sinkCfg)
	if err != nil {
		logger.Error("Failed to initialize export sink", log.FieldError, err)
		os.Exit(1)
	}
	if sink.Cleanup != nil {
		defer func() {
			if err := sink.Cleanup(); err != nil {
				logger.Error("Export sink cleanup failed", log.FieldError, err)
			}
		}()
	}

	amqpClient, err := backend.ConnectAMQP(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exporter := worker.NewExportWorker(repo, sink.Sink, logger)

	consumeErr := make(chan error, 1)
	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)
	go func() {
		consumeErr <- amqpClient.Consume(ctx, exporter.HandleEvent)
	}()

	select {
	case err := <-consumeErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", log.FieldError, err)
			os.Exit(1)
		}
	case <-ctx.Done():
		<-consumeErr
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker shutdown complete")
}
