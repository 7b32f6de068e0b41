package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/cbu-recon/payscraper/internal/browser"
	"github.com/cbu-recon/payscraper/pkg/logger"
	"github.com/cbu-recon/payscraper/pkg/payment"
)

// Fetcher retrieves the HTML of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*browser.FetchResult, error)
}

type Scraper struct {
	fetcher Fetcher
}

func New(fetcher Fetcher) *Scraper {
	return &Scraper{fetcher: fetcher}
}

// Result is the outcome of one scrape.
type Result struct {
	URL      string
	FinalURL string
	Records  []payment.Record
	Blocked  bool
	Elapsed  time.Duration
}

// Scrape fetches url once and extracts its payment records. An empty
// result is not an error. Fetch and parse failures come back wrapped in
// payment.ErrFetchFailed or payment.ErrParseFailed.
func (s *Scraper) Scrape(ctx context.Context, url string) (*Result, error) {
	log := logger.Log
	start := time.Now()

	log.Info().Str("url", url).Msg("fetching url")

	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("request error")
		return nil, fmt.Errorf("%w: %w", payment.ErrFetchFailed, err)
	}

	if page.Blocked {
		log.Warn().Str("url", url).Str("reason", page.BlockReason).Msg("page looks like a block page")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("scraping error")
		return nil, fmt.Errorf("%w: %w", payment.ErrParseFailed, err)
	}

	extraction := payment.Analyze(doc)

	res := &Result{
		URL:      url,
		FinalURL: page.FinalURL,
		Records:  extraction.Records,
		Blocked:  page.Blocked,
		Elapsed:  time.Since(start),
	}

	log.Info().
		Str("url", url).
		Str("source", extraction.Source).
		Int("raw", extraction.Raw).
		Int("unique", len(extraction.Records)).
		Int64("time_ms", res.Elapsed.Milliseconds()).
		Msg("extracted payment records")

	return res, nil
}
