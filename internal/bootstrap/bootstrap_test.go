package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbu-recon/payscraper/internal/browser"
	"github.com/cbu-recon/payscraper/internal/config"
	"github.com/cbu-recon/payscraper/internal/session"
)

func TestNewFetcher_HTTP(t *testing.T) {
	cfg := config.Load()
	cfg.FetchMode = config.FetchModeHTTP

	f, cleanup, err := NewFetcher(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &browser.HTTPFetcher{}, f)
}

func TestNewFetcher_Unknown(t *testing.T) {
	cfg := config.Load()
	cfg.FetchMode = "carrier-pigeon"

	_, _, err := NewFetcher(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown fetch mode")
}

func TestNewStore_Memory(t *testing.T) {
	cfg := config.Load()
	cfg.SessionStore = config.StoreMemory

	s, cleanup, err := NewStore(cfg)
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &session.MemoryStore{}, s)
}

func TestNewStore_Unknown(t *testing.T) {
	cfg := config.Load()
	cfg.SessionStore = "postgres"

	_, _, err := NewStore(cfg)
	assert.ErrorContains(t, err, "unknown session store")
}
