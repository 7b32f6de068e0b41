package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/cbu-recon/payscraper/internal/api"
	"github.com/cbu-recon/payscraper/internal/bootstrap"
	"github.com/cbu-recon/payscraper/internal/config"
	"github.com/cbu-recon/payscraper/internal/queue"
	"github.com/cbu-recon/payscraper/internal/scheduler"
	"github.com/cbu-recon/payscraper/internal/scraper"
	"github.com/cbu-recon/payscraper/internal/session"
	"github.com/cbu-recon/payscraper/pkg/logger"
)

// @title Payment Data Scraper API
// @version 1.0
// @description Scrapes payment tables from web pages, collects pass-book reconciliation edits and exports xlsx.
// @BasePath /
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(logger.IsDev())
	log := logger.Log

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher, closeFetcher, err := bootstrap.NewFetcher(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("mode", cfg.FetchMode).Msg("failed to create fetcher")
	}
	defer closeFetcher()

	store, closeStore, err := bootstrap.NewStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.SessionStore).Msg("failed to create session store")
	}
	defer closeStore()

	if sweeper, ok := store.(session.Sweeper); ok {
		sched, err := scheduler.New(sweeper, cfg.SessionSweepInterval)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create scheduler")
		}
		if err := sched.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start scheduler")
		}
		defer sched.Stop()
	}

	opts := []api.Option{
		api.WithSessionTTL(cfg.SessionTTL),
		api.WithScrapeTimeout(cfg.FetchTimeout + 30*time.Second),
	}

	if cfg.NatsURL != "" {
		natsClient, err := queue.New(cfg.NatsURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to NATS")
		}
		defer natsClient.Close()
		opts = append(opts, api.WithPublisher(queue.NewPublisher(natsClient)))
	}

	handler := api.NewHandler(scraper.New(fetcher), store, opts...)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Immutable:             true,
		BodyLimit:             cfg.BodyLimit,
	})
	handler.SetupRoutes(app)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("shutting down")
		cancel()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("HTTP shutdown error")
		}
	}()

	log.Info().
		Str("fetch_mode", cfg.FetchMode).
		Str("session_store", cfg.SessionStore).
		Dur("session_ttl", cfg.SessionTTL).
		Bool("events", cfg.NatsURL != "").
		Msg("payment scraper started")

	addr := ":" + cfg.HTTPPort
	log.Info().Str("addr", addr).Msg("HTTP API server starting")
	if err := app.Listen(addr); err != nil {
		log.Error().Err(err).Msg("HTTP server error")
	}
}
