package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raymond9734/customer360-backend/internal/config"
	"github.com/Raymond9734/customer360-backend/internal/db"
	"github.com/Raymond9734/customer360-backend/internal/fixture"
	"github.com/Raymond9734/customer360-backend/internal/handler"
	"github.com/Raymond9734/customer360-backend/internal/queue"
	"github.com/Raymond9734/customer360-backend/internal/repository"
	"github.com/Raymond9734/customer360-backend/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting customer 360 API server")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Connect to database only when the dataset lives there
	var database *db.DB
	if cfg.Fixture.Source == fixture.SourcePostgres {
		database, err = db.New(db.Config{
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
	}

	opts := fixture.Options{Source: cfg.Fixture.Source, Path: cfg.Fixture.Path}
	if database != nil {
		opts.DB = database.DB
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	dataset, err := fixture.Load(loadCtx, opts)
	cancelLoad()
	if err != nil {
		logger.Error("failed to load dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("dataset loaded",
		slog.String("source", cfg.Fixture.Source),
		slog.Int("customers", len(dataset.Customers)),
		slog.Int("programs", len(dataset.Programs)),
	)

	// Connect to Redis queue
	var queueClient queue.Client
	if cfg.Queue.Enabled {
		queueClient, err = queue.NewRedisClient(queue.RedisConfig{
			URL:       cfg.Queue.RedisURL,
			QueueName: cfg.Queue.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		queueClient = queue.NewNoopClient(logger)
		logger.Info("queue disabled, selection events will not be published")
	}
	defer queueClient.Close()

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(dataset)
	accountRepo := repository.NewAccountRepository(dataset)
	programRepo := repository.NewProgramRepository(dataset)

	// Initialize services
	labelSvc, err := service.NewLabelService(service.NewTemplateService(), cfg.Search.LabelTemplate)
	if err != nil {
		logger.Error("failed to configure search labels", slog.String("error", err.Error()))
		os.Exit(1)
	}
	searchSvc := service.NewSearchService(customerRepo)
	selectionSvc := service.NewSelectionService(customerRepo, labelSvc, queueClient, logger)
	customerSvc := service.NewCustomerService(customerRepo, accountRepo, programRepo, logger)
	opportunitySvc := service.NewOpportunityService(programRepo, customerRepo, logger)

	// Health checks only ping what this process depends on
	var dbHealth, healthQueue handler.HealthChecker
	if database != nil {
		dbHealth = database
	}
	if cfg.Queue.Enabled {
		healthQueue = queueClient
	}

	router := handler.NewRouter(handler.Handlers{
		Health:       handler.NewHealthHandler(dbHealth, healthQueue, len(dataset.Customers), logger),
		Customers:    handler.NewCustomerHandler(customerSvc, opportunitySvc, logger),
		Search:       handler.NewSearchHandler(searchSvc, selectionSvc, logger),
		SearchSocket: handler.NewSearchSocketHandler(selectionSvc, logger),
		Opportunity:  handler.NewOpportunityHandler(opportunitySvc, logger),
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API server listening", slog.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("server stopped gracefully")
	}
}
