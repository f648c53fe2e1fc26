package main

// @title GeoQuiz Service API
// @version 1.0.0
// @description Географические викторины по данным OpenStreetMap. Сервис строит упражнение по рабочей области: загружает именованные объекты, классифицирует их по надкатегориям, объединяет одноименные фрагменты и разбивает на уровни по значимости.
// @description
// @description Основные возможности:
// @description - Синхронное и асинхронное (Redis Streams) построение упражнений
// @description - Викторины по уровням, повторные викторины и напоминания
// @description - Прогресс упражнения и статистика ответов по объектам

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/geoquiz-service/docs"
	"github.com/geoquiz-service/internal/app"
	"github.com/geoquiz-service/internal/config"
	httpDelivery "github.com/geoquiz-service/internal/delivery/http"
	"github.com/geoquiz-service/internal/delivery/http/handler"
	"github.com/geoquiz-service/internal/pkg/logger"
	"github.com/geoquiz-service/internal/worker"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting GeoQuiz Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("source_provider", cfg.Source.Provider),
	)

	// 3. Connect to PostgreSQL, OSM PostgreSQL and Redis
	infra, err := app.Connect(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect", zap.Error(err))
	}
	defer infra.Close(log)

	// 4. Health checks and migrations
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := infra.Health(ctx); err != nil {
		cancel()
		log.Fatal("Health check failed", zap.Error(err))
	}
	if err := infra.DB.Migrate(ctx); err != nil {
		cancel()
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}
	cancel()

	log.Info("All connections healthy")

	// 5. Initialize Use Cases
	uc, err := app.NewUseCases(cfg, infra, log)
	if err != nil {
		log.Fatal("Failed to initialize use cases", zap.Error(err))
	}

	log.Info("Use cases initialized")

	// 6. Initialize HTTP Handlers
	checks := map[string]handler.HealthChecker{
		"postgres": infra.DB,
		"redis":    infra.Redis,
	}
	if infra.OSMDB != nil {
		checks["osm_postgres"] = infra.OSMDB
	}

	exerciseHandler := handler.NewExerciseHandler(uc.Exercise, uc.BuildJobs, log)
	quizHandler := handler.NewQuizHandler(uc.Quiz, log)
	healthHandler := handler.NewHealthHandler(checks, log)

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, exerciseHandler, quizHandler, healthHandler)

	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	if cfg.Metrics.Enabled {
		go infra.WatchPoolMetrics(bgCtx, 15*time.Second)
	}

	// 8. Build worker in-process, если включен
	var workerManager *worker.WorkerManager
	if cfg.Worker.Enabled {
		workerManager = worker.NewWorkerManager(log)
		workerManager.Register(uc.NewBuildWorker(&cfg.Worker, log))
		if err := workerManager.Start(bgCtx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
		zap.Bool("worker", cfg.Worker.Enabled),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	bgCancel()
	if workerManager != nil {
		if err := workerManager.Stop(); err != nil {
			log.Error("Error stopping workers", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
