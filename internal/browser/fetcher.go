package browser

import (
	"errors"
	"fmt"
)

// ErrBlocked marks a rejected response that looks like an anti-bot or
// access-denied page.
var ErrBlocked = errors.New("blocked by target site")

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// FetchResult represents the result of fetching a URL
type FetchResult struct {
	URL         string
	FinalURL    string
	StatusCode  int
	ContentType string
	HTML        string
	Blocked     bool
	BlockReason string
}

func statusError(html string, code int, url string) error {
	if block := DetectBlocking(html, code); block.Blocked {
		return fmt.Errorf("%w (%s): unexpected status %d for %s", ErrBlocked, block.Reason, code, url)
	}
	return fmt.Errorf("unexpected status %d for %s", code, url)
}
