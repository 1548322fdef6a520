package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("QNA_PRIMARY.ENV", "development")
	t.Setenv("QNA_SERVER.PORT", "4000")
	t.Setenv("QNA_SERVER.READ_TIMEOUT", "30")
	t.Setenv("QNA_SERVER.WRITE_TIMEOUT", "30")
	t.Setenv("QNA_SERVER.IDLE_TIMEOUT", "60")
	t.Setenv("QNA_SERVER.CORS_ALLOWED_ORIGINS", "*")
	t.Setenv("QNA_DATABASE.HOST", "localhost")
	t.Setenv("QNA_DATABASE.PORT", "5432")
	t.Setenv("QNA_DATABASE.USER", "postgres")
	t.Setenv("QNA_DATABASE.PASSWORD", "p@ss:word")
	t.Setenv("QNA_DATABASE.NAME", "qna")
	t.Setenv("QNA_DATABASE.SSL_MODE", "disable")
	t.Setenv("QNA_DATABASE.MAX_OPEN_CONNS", "10")
	t.Setenv("QNA_DATABASE.MAX_IDLE_CONNS", "2")
	t.Setenv("QNA_DATABASE.CONN_MAX_LIFETIME", "3600")
	t.Setenv("QNA_DATABASE.CONN_MAX_IDLE_TIME", "1800")
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "p@ss:word", cfg.Database.Password)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.False(t, cfg.IsLocal())
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("QNA_DATABASE.HOST", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestObservabilityConfig_Validate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.SlowQueryThreshold = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.ServiceName = ""
	assert.Error(t, cfg.Validate())
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.GetLogLevel())
}

func TestObservabilityConfig_HealthCheckEnabled(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.HealthCheckEnabled("database"))
	assert.True(t, cfg.HealthCheckEnabled("redis"))
	assert.False(t, cfg.HealthCheckEnabled("kafka"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.HealthCheckEnabled("database"))
}

func TestLoadConfig_PartialObservabilityOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("QNA_OBSERVABILITY.LOGGING.LEVEL", "warn")
	t.Setenv("QNA_OBSERVABILITY.LOGGING.SLOW_QUERY_THRESHOLD", "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.Equal(t, DefaultObservabilityConfig().HealthChecks, cfg.Observability.HealthChecks)
	assert.Empty(t, cfg.Observability.NewRelic.LicenseKey)
}
