package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/udhari/ledger-service/internal/application/service"
	"github.com/udhari/ledger-service/internal/config"
	"github.com/udhari/ledger-service/internal/domain"
	"github.com/udhari/ledger-service/internal/infrastructure/messaging"
	"github.com/udhari/ledger-service/internal/infrastructure/store"
	"github.com/udhari/ledger-service/internal/interface/http/handler"
	"github.com/udhari/ledger-service/internal/interface/http/router"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	cfg := config.Load()
	ctx := context.Background()

	backend, eventPublisher := buildInfrastructure(ctx, cfg, logger)

	adapter := store.NewAdapter(backend, logger)
	ledger := service.NewLedgerService(ctx, adapter, eventPublisher, logger)

	handlers := handler.NewHandlers(ledger, logger)
	r := router.NewRouter(handlers, logger)

	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("starting server", zap.String("address", serverAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

// buildInfrastructure selects the configured storage backend and, when redis
// is reachable, wires event publishing. Any unreachable backend degrades to
// the in-memory store so the ledger always comes up; only durability is
// lost, and that is logged.
func buildInfrastructure(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Backend, domain.EventPublisher) {
	var backend store.Backend
	var eventPublisher domain.EventPublisher

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, event publishing disabled", zap.Error(err))
		redisClient = nil
	} else {
		eventPublisher = messaging.NewRedisEventPublisher(redisClient, logger)
		logger.Info("connected to Redis successfully")
	}

	switch cfg.Storage.Backend {
	case "memory":
		backend = store.NewMemory()
		logger.Info("using in-memory store")

	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=Local",
			cfg.MySQL.User,
			cfg.MySQL.Password,
			cfg.MySQL.Host,
			cfg.MySQL.Database,
		)
		db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err == nil {
			backend, err = store.NewMySQL(db)
		}
		if err != nil {
			logger.Warn("mysql unavailable, falling back to in-memory store", zap.Error(err))
			backend = store.NewMemory()
		} else {
			logger.Info("connected to MySQL successfully", zap.String("host", cfg.MySQL.Host))
		}

	default: // redis
		if redisClient != nil {
			backend = store.NewRedis(redisClient)
		} else {
			logger.Warn("falling back to in-memory store")
			backend = store.NewMemory()
		}
	}

	return backend, eventPublisher
}
