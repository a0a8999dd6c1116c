package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "https://queue-assigner.onrender.com", cfg.QueueAssigner.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.QueueAssigner.Timeout)
	assert.Equal(t, "kiosk_session", cfg.Session.CookieName)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("QUEUE_ASSIGNER_URL", "http://localhost:8000")
	t.Setenv("QUEUE_ASSIGNER_TIMEOUT", "3s")
	t.Setenv("SESSION_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8000", cfg.QueueAssigner.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.QueueAssigner.Timeout)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "intake",
		Password: "secret",
		Database: "patient_intake",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db port=5432 user=intake password=secret dbname=patient_intake sslmode=disable",
		cfg.DatabaseDSN(),
	)
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "redis", Port: 6380}
	assert.Equal(t, "redis:6380", cfg.RedisAddr())
}
