package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"clientbook/backend/internal/cache"
	"clientbook/backend/internal/config"
	"clientbook/backend/internal/log"
	"clientbook/backend/internal/queue"
	"clientbook/backend/internal/security"
	"clientbook/backend/internal/worker"
)

const claimInterval = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	defer redisClient.Close()

	tokens := security.NewTokenService(
		cfg.Security.JWTSecret,
		cfg.Security.AccessTTL,
		cfg.Security.RefreshTTL,
		cfg.Security.EmailTokenTTL,
	)

	mailer, err := worker.NewSMTPMailer(cfg.Mail, tokens, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("mailer init failed")
	}

	processor := worker.NewProcessor(mailer, logger)
	consumer := queue.NewConsumer(
		redisClient,
		cfg.Redis.Stream,
		cfg.Redis.Group,
		cfg.Redis.Consumer,
		claimInterval,
		logger,
		processor,
	)

	if err := consumer.EnsureGroup(ctx); err != nil {
		logger.Fatal().Err(err).Msg("consumer group init failed")
	}

	go func() {
		if err := consumer.Start(ctx); err != nil && err != context.Canceled {
			logger.Fatal().Err(err).Msg("consumer stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")
	time.Sleep(500 * time.Millisecond)
}
