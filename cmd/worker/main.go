package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/geoquiz-service/internal/app"
	"github.com/geoquiz-service/internal/config"
	"github.com/geoquiz-service/internal/pkg/logger"
	"github.com/geoquiz-service/internal/worker"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Exercise Build Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Duration("build_timeout", cfg.Worker.BuildTimeout),
		zap.String("source_provider", cfg.Source.Provider))

	// 3. Connect to PostgreSQL, OSM PostgreSQL and Redis
	infra, err := app.Connect(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect", zap.Error(err))
	}
	defer infra.Close(log)

	// 4. Initialize use cases
	uc, err := app.NewUseCases(cfg, infra, log)
	if err != nil {
		log.Fatal("Failed to initialize use cases", zap.Error(err))
	}

	// 5. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(uc.NewBuildWorker(&cfg.Worker, log))

	// 6. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start workers
	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	// Stop worker manager
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
