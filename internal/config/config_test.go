package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saylani-fulfillment/internal/log"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "AI_API_KEY", "GEMINI_API_KEY", "AI_TIMEOUT", "SMTP_USER", "SMTP_PASS", "ADMIN_EMAIL", "TASK_WORKERS", "RATE_LIMIT_PER_MINUTE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "gemini-flash-latest", cfg.AIModel)
	assert.Equal(t, defaultAIBaseURL, cfg.AIBaseURL)
	assert.Equal(t, 4*time.Second, cfg.AITimeout)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 4, cfg.TaskWorkers)
	assert.Equal(t, 600, cfg.RateLimitPerMinute)
	assert.False(t, cfg.SMTPEnabled())
	require.Len(t, cfg.Warnings, 2)
	assert.Contains(t, cfg.Warnings[0], "AI_API_KEY")
	assert.Contains(t, cfg.Warnings[1], "SMTP_USER")
}

func TestLoadLeavesLoggerUnconfigured(t *testing.T) {
	t.Setenv("AI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	require.NotEmpty(t, cfg.Warnings)

	// A Load that logged would already have fixed the logger at its defaults.
	var buf bytes.Buffer
	log.Configure(log.Config{Level: cfg.LogLevel, Output: &buf})
	logger := log.WithComponent("config")
	logger.Debug().Msg("debug enabled")
	assert.Contains(t, buf.String(), `"message":"debug enabled"`)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("AI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("AI_TIMEOUT", "5")
	t.Setenv("SMTP_USER", "bot@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("TASK_WORKERS", "not-a-number")

	cfg := Load()
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "g-key", cfg.AIAPIKey)
	assert.Equal(t, 5*time.Second, cfg.AITimeout)
	assert.Equal(t, "bot@example.com", cfg.AdminEmail, "admin address falls back to the SMTP user")
	assert.Equal(t, 4, cfg.TaskWorkers)
	assert.True(t, cfg.SMTPEnabled())
	assert.Empty(t, cfg.Warnings)
}

func TestGetEnvDurationDefault(t *testing.T) {
	t.Setenv("X_TIMEOUT", "1500ms")
	assert.Equal(t, 1500*time.Millisecond, getEnvDurationDefault("X_TIMEOUT", time.Second))
	t.Setenv("X_TIMEOUT", "-3")
	assert.Equal(t, time.Second, getEnvDurationDefault("X_TIMEOUT", time.Second))
}
