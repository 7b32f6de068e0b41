package chromedp

import (
	"os"

	"github.com/chromedp/chromedp"
)

// GetExecAllocatorOptions returns chromedp options that work both locally and in Docker
func GetExecAllocatorOptions(userAgent string) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("window-size", "1920,1080"),

		// Stability flags to prevent renderer crashes
		chromedp.Flag("disable-features", "site-per-process,TranslateUI"),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-popup-blocking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("password-store", "basic"),
		chromedp.Flag("use-mock-keychain", true),

		chromedp.Flag("js-flags", "--max-old-space-size=512"),
	)
	if userAgent != "" {
		opts = append(opts, chromedp.UserAgent(userAgent))
	}

	// In Docker container, find the Chrome/Chromium executable
	chromePaths := []string{
		"/headless-shell/headless-shell", // chromedp/headless-shell
		"/usr/bin/chromium-browser",      // zenika/alpine-chrome
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
	}
	for _, p := range chromePaths {
		if _, err := os.Stat(p); err == nil {
			opts = append(opts, chromedp.ExecPath(p))
			break
		}
	}

	return opts
}

// GetStealthScripts returns JavaScript injected before any page script runs.
// Some ledger portals refuse to render their tables for automated browsers.
func GetStealthScripts() string {
	return `
		Object.defineProperty(navigator, 'webdriver', {
			get: () => undefined,
		});

		Object.defineProperty(navigator, 'languages', {
			get: () => ['en-US', 'en'],
		});

		if (!window.chrome) {
			window.chrome = {};
		}
		if (!window.chrome.runtime) {
			window.chrome.runtime = {
				connect: () => {},
				sendMessage: () => {},
			};
		}
	`
}
