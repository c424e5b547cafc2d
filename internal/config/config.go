package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTP trigger
	ListenAddr string
	CronSecret string

	// Database
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Scrape provider. The API key is deliberately not required at boot:
	// a missing credential aborts the run that needs it, not the process.
	BrightDataBaseURL string
	BrightDataAPIKey  string
	BrightDataTimeout time.Duration

	// Run settings
	RunLeaseTTL time.Duration
	RunSchedule string // optional cron spec, e.g. "@every 6h"

	// Optional run-summary notifications
	TelegramToken  string
	TelegramChatID int64

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		ListenAddr:        ":8080",
		BrightDataBaseURL: "https://api.brightdata.com",
		BrightDataTimeout: 5 * time.Minute,
		RunLeaseTTL:       30 * time.Minute,
		LogLevel:          "info",
		RedisDB:           0,
	}

	cfg.CronSecret = os.Getenv("CRON_SECRET")
	if cfg.CronSecret == "" {
		return nil, fmt.Errorf("CRON_SECRET is required")
	}

	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	} else {
		cfg.RedisAddr = "localhost:6379"
	}

	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	cfg.BrightDataAPIKey = os.Getenv("BRIGHTDATA_API_KEY")

	if baseURL := os.Getenv("BRIGHTDATA_BASE_URL"); baseURL != "" {
		cfg.BrightDataBaseURL = baseURL
	}

	if timeout := os.Getenv("BRIGHTDATA_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid BRIGHTDATA_TIMEOUT: %w", err)
		}
		cfg.BrightDataTimeout = d
	}

	if ttl := os.Getenv("RUN_LEASE_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid RUN_LEASE_TTL: %w", err)
		}
		cfg.RunLeaseTTL = d
	}

	cfg.RunSchedule = os.Getenv("RUN_SCHEDULE")

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.CronSecret == "" {
		return fmt.Errorf("cron secret is empty")
	}

	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is empty")
	}

	if c.BrightDataTimeout < time.Second {
		return fmt.Errorf("provider timeout too small: %v", c.BrightDataTimeout)
	}

	if c.RunLeaseTTL < time.Minute {
		return fmt.Errorf("run lease TTL too small: %v", c.RunLeaseTTL)
	}

	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

// NotificationsEnabled reports whether a Telegram notifier should be wired.
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
