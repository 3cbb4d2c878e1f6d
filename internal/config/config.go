// Package config loads the immutable startup configuration from the process
// environment. It is read once at entry and passed by reference into the
// dispatcher, access policy, and liveness server; no component reads ambient
// environment state directly.
package config

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"

	"github.com/descargabot/descargabot/internal/bot"
)

// Config is the full startup configuration. Immutable after Load.
type Config struct {
	// BotToken is the platform credential for the Telegram bot API.
	BotToken string `env:"BOT_TOKEN" validate:"required"`
	// AdminID is the identity granted AdminOnly access.
	AdminID int64 `env:"ADMIN_ID" validate:"required"`
	// Port is the listen port of the liveness server.
	Port int `env:"PORT, default=10000" validate:"min=1,max=65535"`

	Log LogConfig
}

// LogConfig controls slog initialization.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL, default=info" validate:"oneof=debug info warn error"`
	Format string `env:"LOG_FORMAT, default=text" validate:"oneof=text json"`
}

// Addr returns the liveness server listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Admins returns the configured admin identities as the access policy
// expects them.
func (c Config) Admins() []bot.Identity {
	if c.AdminID == 0 {
		return nil
	}
	return []bot.Identity{bot.Identity(c.AdminID)}
}

// Load reads and validates configuration from the environment. A missing or
// malformed required value is fatal: the caller must not start any component.
func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
