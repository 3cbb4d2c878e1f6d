package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/descargabot/descargabot/internal/bot"
	"github.com/descargabot/descargabot/internal/config"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_ID", "123456")
}

func TestLoad_Defaults(t *testing.T) {
	setValidEnv(t)

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, int64(123456), cfg.AdminID)
	assert.Equal(t, 10000, cfg.Port)
	assert.Equal(t, ":10000", cfg.Addr())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("ADMIN_ID", "123456")

	_, err := config.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BotToken")
}

func TestLoad_MissingAdmin(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_ID", "")

	_, err := config.Load(context.Background())
	require.Error(t, err)
}

func TestLoad_InvalidPort(t *testing.T) {
	setValidEnv(t)
	t.Setenv("PORT", "99999")

	_, err := config.Load(context.Background())
	require.Error(t, err)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	setValidEnv(t)
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := config.Load(context.Background())
	require.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	setValidEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestAdmins(t *testing.T) {
	t.Parallel()
	cfg := config.Config{AdminID: 123456}
	assert.Equal(t, []bot.Identity{bot.Identity(123456)}, cfg.Admins())
	assert.Nil(t, config.Config{}.Admins())
}
