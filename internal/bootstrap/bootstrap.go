// Package bootstrap builds the runtime components selected by config.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/cbu-recon/payscraper/internal/browser"
	"github.com/cbu-recon/payscraper/internal/config"
	"github.com/cbu-recon/payscraper/internal/scraper"
	"github.com/cbu-recon/payscraper/internal/session"
	"github.com/cbu-recon/payscraper/pkg/logger"
)

// NewFetcher returns the fetcher for cfg.FetchMode and a cleanup func.
func NewFetcher(ctx context.Context, cfg *config.Config) (scraper.Fetcher, func(), error) {
	switch cfg.FetchMode {
	case config.FetchModeHTTP:
		f := browser.NewHTTPFetcher(
			browser.WithTimeout(cfg.FetchTimeout),
			browser.WithUserAgent(cfg.UserAgent),
			browser.WithRateLimit(cfg.FetchRateLimit),
			browser.WithInsecureTLS(cfg.InsecureTLS),
		)
		return f, func() {}, nil
	case config.FetchModeBrowser:
		f, err := browser.NewRenderFetcher(ctx, browser.RenderConfig{
			UserAgent:     cfg.UserAgent,
			PageLoadDelay: cfg.PageLoadDelay,
			Timeout:       cfg.FetchTimeout,
			MaxTabs:       cfg.MaxBrowserTabs,
		})
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown fetch mode %q", cfg.FetchMode)
	}
}

// NewStore returns the session store for cfg.SessionStore and a cleanup func.
func NewStore(cfg *config.Config) (session.Store, func(), error) {
	log := logger.Log

	switch cfg.SessionStore {
	case config.StoreMemory:
		return session.NewMemoryStore(), func() {}, nil
	case config.StoreRedis:
		s, err := session.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close")
			}
		}, nil
	case config.StoreMongo:
		s, err := session.NewMongoStore(cfg.MongoURL, cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				log.Warn().Err(err).Msg("mongo close")
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}
