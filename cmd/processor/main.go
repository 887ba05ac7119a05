package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/application"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/application/services"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/config"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/infrastructure/gateway"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/infrastructure/notification"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/infrastructure/observability"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/infrastructure/persistence/memory"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/interfaces/rest"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/worker"
)

// orderStore is what both repositories offer to the processor and the sweeper.
type orderStore interface {
	application.OrderRepository
	worker.StaleOrderStore
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(observability.NewTraceHandler(cfg.Logger.NewLogger(os.Stdout).Handler()))
	slog.SetDefault(logger)

	logger.Info("starting payment processor",
		"env", cfg.Primary.Env,
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Driver,
		"gateway", cfg.Gateway.Mode,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()

	if cfg.Tracing.Enabled {
		tp := observability.InitTracing(cfg.Tracing.SampleRatio)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Error("failed to shut down tracer provider", "error", err)
			}
		}()
	}

	var store orderStore
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := postgres.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store = postgres.NewOrderRepository(db.Pool)
	default:
		store = memory.NewOrderRepository()
	}

	var paymentGateway application.PaymentGateway
	switch cfg.Gateway.Mode {
	case config.GatewayHTTP:
		paymentGateway = gateway.NewHTTPGateway(cfg.Gateway)
	default:
		paymentGateway = gateway.NewSimulatedGateway()
	}
	paymentGateway = gateway.NewRetryGateway(paymentGateway, cfg.Retry, logger)

	var notifier application.Notifier
	switch cfg.Notifier.Mode {
	case config.NotifierRecording:
		notifier = notification.NewRecordingNotifier()
	default:
		notifier = notification.NewLogNotifier(logger)
	}

	metrics := observability.NewMetrics(cfg.Metrics.Namespace)

	processor := services.NewPaymentProcessor(store, paymentGateway, notifier, logger,
		services.WithPreSave(cfg.Processor.PreSaveOrders),
		services.WithMetrics(metrics),
	)

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = metrics.Handler()
	}

	router := rest.NewRouter(
		rest.NewPaymentHandler(processor, cfg.Server.MaxBodyBytes, logger),
		metricsHandler,
		cfg.Metrics.Path,
	)

	handler := middleware.Recovery(logger)(router)
	handler = middleware.Logging(logger, metrics)(handler)
	handler = middleware.Timeout(cfg.Server.RequestTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	if cfg.Worker.Enabled {
		sweeper := worker.NewStaleOrderSweeper(
			store,
			cfg.Worker.Interval,
			cfg.Worker.StaleAfter,
			cfg.Worker.BatchSize,
			logger,
		).WithMetrics(metrics)

		go sweeper.Start(workerCtx)
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
