package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("KOTOBA_DATABASE_URL", "postgres://localhost:5432/kotoba_test")
	t.Setenv("KOTOBA_AUTH_JWT_SECRET", testSecret)
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/kotoba_test", cfg.Database.URL)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 18, cfg.Quiz.MaxNewWordsPerDay)
	assert.Equal(t, 6, cfg.Quiz.MaxNewWordsPerSitting)
	assert.Equal(t, 1, cfg.Quiz.ColdQuizSkillLevel)
	assert.Equal(t, 5, cfg.Quiz.BatchSize)
	assert.Equal(t, 24, cfg.Auth.TokenLifetimeHours)
	assert.Equal(t, "audio", cfg.Media.AudioDir)
	assert.Equal(t, time.Minute, cfg.Scheduler.TickInterval)
	assert.Equal(t, 30*time.Minute, cfg.Scheduler.BreakAfter)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("KOTOBA_SERVER_PORT", "9090")
	t.Setenv("KOTOBA_SERVER_LOG_LEVEL", "debug")
	t.Setenv("KOTOBA_QUIZ_MAX_NEW_WORDS_PER_DAY", "10")
	t.Setenv("KOTOBA_SCHEDULER_BREAK_AFTER", "45m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 10, cfg.Quiz.MaxNewWordsPerDay)
	assert.Equal(t, 45*time.Minute, cfg.Scheduler.BreakAfter)
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	t.Setenv("KOTOBA_DATABASE_URL", "")
	t.Setenv("KOTOBA_AUTH_JWT_SECRET", testSecret)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Database.URL")
}

func TestLoadShortJWTSecret(t *testing.T) {
	t.Setenv("KOTOBA_DATABASE_URL", "postgres://localhost:5432/kotoba_test")
	t.Setenv("KOTOBA_AUTH_JWT_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWTSecret")
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("KOTOBA_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LogLevel")
}
