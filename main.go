package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"rewear/internal/config"
	"rewear/internal/events"
	"rewear/internal/repositories"
	"rewear/internal/server"
	"rewear/pkg/rabbitmq"
)

// auditQueue receives a copy of every marketplace event.
const auditQueue = "rewear_audit"

func main() {
	// --- Configuration ---
	cfg, err := config.Load(os.Getenv("REWEAR_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// --- Logger ---
	var logger *zap.Logger
	if cfg.LogDebug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	// --- Database ---
	db, err := repositories.OpenDatabase(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	logger.Info("database ready", zap.String("driver", cfg.DatabaseDriver))

	if cfg.SeedSampleData {
		if err := server.SeedSampleData(repositories.NewGORMRepositories(db), logger); err != nil {
			logger.Fatal("failed to seed sample data", zap.Error(err))
		}
	}

	// --- Event bus ---
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger)
		if err != nil {
			logger.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		publisher = events.NewBusPublisher(mqClient)

		if err := mqClient.Consume(auditQueue, "#", events.NewLogHandler(logger)); err != nil {
			logger.Error("failed to start audit consumer", zap.Error(err))
		}
	} else {
		logger.Warn("rabbitmq_url is not set; domain events are not published")
	}

	// --- HTTP ---
	app, err := server.New(cfg, db, publisher, logger)
	if err != nil {
		logger.Fatal("failed to build application", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", zap.String("addr", cfg.AppPort))
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
	logger.Info("server gracefully stopped")
}
