package browser

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	cdpopts "github.com/cbu-recon/payscraper/pkg/chromedp"
	"github.com/cbu-recon/payscraper/pkg/logger"
)

// RenderFetcher loads pages in a headless browser so tables built by
// JavaScript are present in the returned HTML.
type RenderFetcher struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	semaphore     chan struct{} // limits concurrent tabs
	pageLoadDelay time.Duration
	timeout       time.Duration
}

type RenderConfig struct {
	UserAgent     string
	PageLoadDelay time.Duration
	Timeout       time.Duration
	MaxTabs       int
}

func NewRenderFetcher(ctx context.Context, cfg RenderConfig) (*RenderFetcher, error) {
	if cfg.MaxTabs < 1 {
		cfg.MaxTabs = 2
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, cdpopts.GetExecAllocatorOptions(ua)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	logger.Log.Info().Int("max_tabs", cfg.MaxTabs).Dur("page_load_delay", cfg.PageLoadDelay).Msg("headless browser started")

	return &RenderFetcher{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		semaphore:     make(chan struct{}, cfg.MaxTabs),
		pageLoadDelay: cfg.PageLoadDelay,
		timeout:       cfg.Timeout,
	}, nil
}

func (b *RenderFetcher) Close() {
	b.browserCancel()
	b.allocCancel()
	logger.Log.Info().Msg("headless browser closed")
}

// Fetch loads url in a new tab and returns the rendered document.
func (b *RenderFetcher) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	select {
	case b.semaphore <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("acquire browser slot: %w", ctx.Err())
	}
	defer func() { <-b.semaphore }()

	tabCtx, tabCancel := chromedp.NewContext(b.browserCtx)
	defer tabCancel()

	tabTimeoutCtx, tabTimeoutCancel := context.WithTimeout(tabCtx, b.timeout)
	defer tabTimeoutCancel()

	// Stop the tab when the caller gives up.
	stop := context.AfterFunc(ctx, tabTimeoutCancel)
	defer stop()

	var html, finalURL string
	var status atomic.Int64
	chromedp.ListenTarget(tabTimeoutCtx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok && resp.Type == network.ResourceTypeDocument {
			status.CompareAndSwap(0, resp.Response.Status)
		}
	})

	tasks := chromedp.Tasks{
		network.Enable(),
		// Block resources that never carry table data
		chromedp.ActionFunc(func(ctx context.Context) error {
			return network.SetBlockedURLs([]string{
				"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.svg", "*.ico",
				"*.mp4", "*.webm",
				"*.woff", "*.woff2", "*.ttf", "*.eot", "*.otf",
				"*google-analytics*", "*googletagmanager*",
			}).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(cdpopts.GetStealthScripts()).Do(ctx)
			return err
		}),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(b.pageLoadDelay),
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &html),
	}

	if err := chromedp.Run(tabTimeoutCtx, tasks); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}

	code := int(status.Load())
	if code == 0 {
		code = 200
	}
	if code < 200 || code >= 300 {
		return nil, statusError(html, code, url)
	}

	logger.Log.Debug().Str("url", url).Str("final_url", finalURL).Int("html_len", len(html)).Msg("page rendered")

	block := DetectBlocking(html, code)
	return &FetchResult{
		URL:         url,
		FinalURL:    finalURL,
		StatusCode:  code,
		ContentType: "text/html",
		HTML:        html,
		Blocked:     block.Blocked,
		BlockReason: block.Reason,
	}, nil
}
