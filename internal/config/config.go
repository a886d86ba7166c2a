package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	DatabaseURL string `env:"DATABASE_URL,required"`
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":8080"`

	// Sessions
	SessionTTLHours int `env:"SESSION_TTL_HOURS" envDefault:"72"`

	// SuperAdmin bootstrap (created on startup if missing)
	SuperAdminEmail    string `env:"SUPERADMIN_EMAIL"`
	SuperAdminPassword string `env:"SUPERADMIN_PASSWORD"`
	SuperAdminName     string `env:"SUPERADMIN_NAME" envDefault:"Platform Admin"`

	// Auth-surface rate limiting, requests per minute per IP
	AuthRateLimit int `env:"AUTH_RATE_LIMIT" envDefault:"20"`

	// Ops notifications via Telegram (disabled when token empty)
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID"`

	// Gin mode: debug, release or test
	GinMode string `env:"GIN_MODE" envDefault:"release"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// NotificationsEnabled reports whether the Telegram ops channel is configured.
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}
