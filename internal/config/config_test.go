package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFailsWithoutAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoadFallsBackToLegacyAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "legacy-key", cfg.Gemini.APIKey)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("RETRY_INITIAL_DELAY", "")
	t.Setenv("GENERATION_PARALLEL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9085", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, 2*time.Second, cfg.Generation.RetryInitialDelay)
	assert.True(t, cfg.Generation.Parallel)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DB_PORT", "")
	t.Setenv("GEMINI_TIMEOUT", "15s")
	t.Setenv("GENERATION_PARALLEL", "false")
	t.Setenv("RETRY_MAX_ATTEMPTS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, 15*time.Second, cfg.Gemini.Timeout)
	assert.False(t, cfg.Generation.Parallel)
	assert.Equal(t, 3, cfg.Generation.RetryMaxAttempts)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Driver:   "postgres",
		Host:     "db",
		Port:     "5432",
		User:     "app",
		Password: "secret",
		DBName:   "reviews",
	}}
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=reviews sslmode=disable", cfg.GetDatabaseDSN())

	cfg.Database.Driver = "mysql"
	cfg.Database.Port = "3306"
	assert.Equal(t, "app:secret@tcp(db:3306)/reviews?charset=utf8mb4&parseTime=True&loc=Local", cfg.GetDatabaseDSN())

	cfg.Database.DSN = "custom"
	assert.Equal(t, "custom", cfg.GetDatabaseDSN())
}
