package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "BODY_LIMIT", "FETCH_MODE", "FETCH_TIMEOUT", "FETCH_RATE_LIMIT",
		"USER_AGENT", "SESSION_STORE", "SESSION_TTL", "NATS_URL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.HTTPPort)
	assert.Equal(t, FetchModeHTTP, cfg.FetchMode)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Zero(t, cfg.FetchRateLimit)
	assert.Equal(t, StoreMemory, cfg.SessionStore)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.NatsURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("FETCH_MODE", "Browser")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("FETCH_RATE_LIMIT", "0.5")
	t.Setenv("SESSION_STORE", "REDIS")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("BODY_LIMIT", "1024")
	t.Setenv("FETCH_INSECURE_TLS", "true")

	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, FetchModeBrowser, cfg.FetchMode)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.InDelta(t, 0.5, cfg.FetchRateLimit, 1e-9)
	assert.Equal(t, StoreRedis, cfg.SessionStore)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 1024, cfg.BodyLimit)
	assert.True(t, cfg.InsecureTLS)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "soon")
	t.Setenv("BODY_LIMIT", "lots")
	t.Setenv("FETCH_RATE_LIMIT", "fast")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 4*1024*1024, cfg.BodyLimit)
	assert.Zero(t, cfg.FetchRateLimit)
}
