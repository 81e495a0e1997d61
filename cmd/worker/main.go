package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/udhari/ledger-service/internal/application/service"
	"github.com/udhari/ledger-service/internal/config"
	"github.com/udhari/ledger-service/internal/domain"
	"github.com/udhari/ledger-service/internal/infrastructure/messaging"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	cfg := config.Load()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}
	logger.Info("connected to Redis successfully")

	notificationService := service.NewNotificationService(logger)

	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("worker-%s-%d", hostname, os.Getpid())
	eventSubscriber := messaging.NewRedisEventSubscriber(redisClient, logger, consumerName)

	if err := eventSubscriber.Subscribe(ctx, domain.EventTypeReminderRequested, notificationService.HandleReminderRequested); err != nil {
		logger.Fatal("failed to subscribe to reminder events", zap.Error(err))
	}
	if err := eventSubscriber.Subscribe(ctx, domain.EventTypePaymentRecorded, notificationService.HandlePaymentRecorded); err != nil {
		logger.Fatal("failed to subscribe to payment events", zap.Error(err))
	}

	runCtx, cancel := context.WithCancel(ctx)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down worker...")
		cancel()
	}()

	if err := eventSubscriber.Start(runCtx); err != nil {
		logger.Fatal("subscriber stopped with error", zap.Error(err))
	}

	logger.Info("worker exited")
}
