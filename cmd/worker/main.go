package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raymond9734/customer360-backend/internal/config"
	"github.com/Raymond9734/customer360-backend/internal/db"
	"github.com/Raymond9734/customer360-backend/internal/fixture"
	"github.com/Raymond9734/customer360-backend/internal/queue"
	"github.com/Raymond9734/customer360-backend/internal/repository"
	"github.com/Raymond9734/customer360-backend/internal/service"
	"github.com/Raymond9734/customer360-backend/internal/worker"
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting customer 360 selection worker")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if !cfg.Queue.Enabled {
		logger.Error("queue is disabled, set QUEUE_ENABLED=true to run the worker")
		os.Exit(1)
	}

	opts := fixture.Options{Source: cfg.Fixture.Source, Path: cfg.Fixture.Path}
	if cfg.Fixture.Source == fixture.SourcePostgres {
		database, err := db.New(db.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			logger.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.Close()

		logger.Info("connected to database")
		opts.DB = database.DB
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	dataset, err := fixture.Load(loadCtx, opts)
	cancelLoad()
	if err != nil {
		logger.Error("failed to load dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Connect to Redis queue
	queueClient, err := queue.NewRedisClient(queue.RedisConfig{
		URL:       cfg.Queue.RedisURL,
		QueueName: cfg.Queue.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer queueClient.Close()

	logger.Info("connected to Redis queue")

	customerSvc := service.NewCustomerService(
		repository.NewCustomerRepository(dataset),
		repository.NewAccountRepository(dataset),
		repository.NewProgramRepository(dataset),
		logger,
	)
	processor := worker.NewSelectionProcessor(customerSvc, logger)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumerErrors := make(chan error, 1)
	go func() {
		logger.Info("starting selection consumer",
			slog.Int("concurrency", cfg.Worker.Concurrency),
			slog.Int("customers", len(dataset.Customers)),
		)
		consumerErrors <- queueClient.Consume(ctx, processor.Process, cfg.Worker.Concurrency)
	}()

	// Wait for interrupt signal or consumer error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-consumerErrors:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("consumer error", slog.String("error", err.Error()))
			os.Exit(1)
		}

	case sig := <-quit:
		logger.Info("shutting down worker", slog.String("signal", sig.String()))

		// Cancel context to stop consumer
		cancel()

		select {
		case <-consumerErrors:
		case <-time.After(5 * time.Second):
			logger.Warn("consumer did not stop in time")
		}

		logger.Info("worker stopped gracefully")
	}
}
