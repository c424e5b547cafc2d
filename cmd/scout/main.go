package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"job-scout/internal/api/brightdata"
	"job-scout/internal/config"
	"job-scout/internal/logger"
	"job-scout/internal/notify"
	"job-scout/internal/pipeline"
	"job-scout/internal/scheduler"
	"job-scout/internal/server"
	"job-scout/internal/storage/postgres"
	"job-scout/internal/storage/redis"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting job-scout discovery pipeline",
		zap.String("log_level", cfg.LogLevel),
		zap.String("listen_addr", cfg.ListenAddr),
	)

	log.Info("connecting to PostgreSQL...")
	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	log.Info("connecting to Redis...")
	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RunLeaseTTL, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close()

	scrapeClient := brightdata.New(cfg.BrightDataBaseURL, cfg.BrightDataAPIKey, cfg.BrightDataTimeout, log)
	log.Info("scrape provider client created")

	runner := pipeline.NewRunner(store, store, store, store, scrapeClient, cache, log)

	var notifier server.Notifier
	if cfg.NotificationsEnabled() {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, log)
		if err != nil {
			log.Fatal("failed to create telegram notifier", zap.Error(err))
		}
		notifier = tg
		log.Info("telegram notifier enabled", zap.Int64("chat_id", cfg.TelegramChatID))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.RunSchedule != "" {
		sched := scheduler.New(cfg.RunSchedule, runner, log)
		if err := sched.Start(ctx); err != nil {
			log.Fatal("failed to start internal scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	srv := server.New(cfg.ListenAddr, cfg.CronSecret, runner, notifier, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
		cancel()
	}()

	if err := srv.Start(); err != nil {
		log.Error("server stopped with error", zap.Error(err))
	}

	log.Info("shutting down gracefully...")
}
