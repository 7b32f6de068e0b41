package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/cbu-recon/payscraper/internal/bootstrap"
	"github.com/cbu-recon/payscraper/internal/config"
	"github.com/cbu-recon/payscraper/internal/export"
	"github.com/cbu-recon/payscraper/internal/scraper"
	"github.com/cbu-recon/payscraper/pkg/logger"
)

var errNoData = errors.New("no payment data found")

func main() {
	_ = godotenv.Load()

	pageURL := flag.String("url", "", "page to scrape")
	out := flag.String("out", "", "output .xlsx path (default: derived from url)")
	flag.Parse()

	if *pageURL == "" {
		fmt.Fprintln(os.Stderr, "usage: scrape -url <url> [-out file.xlsx]")
		os.Exit(2)
	}

	cfg := config.Load()
	logger.Init(logger.IsDev())

	if err := run(cfg, *pageURL, *out); err != nil {
		if errors.Is(err, errNoData) {
			logger.Log.Warn().Str("url", *pageURL).Msg("no payment data found")
			return
		}
		logger.Log.Error().Err(err).Str("url", *pageURL).Msg("scrape failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, pageURL, path string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fetcher, closeFetcher, err := bootstrap.NewFetcher(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create fetcher: %w", err)
	}
	defer closeFetcher()

	result, err := scraper.New(fetcher).Scrape(ctx, pageURL)
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return errNoData
	}

	if path == "" {
		path = export.FileName(pageURL, uuid.New().String())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := export.Write(f, result.Records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	logger.Log.Info().
		Str("url", pageURL).
		Int("records", len(result.Records)).
		Str("path", path).
		Msg("workbook written")
	return nil
}
