package browser

import (
	"fmt"
	"regexp"
	"strings"
)

// BlockResult contains blocking detection result
type BlockResult struct {
	Blocked bool
	Reason  string
}

var ipInTitleRegex = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)
var titleRegex = regexp.MustCompile(`(?i)<title[^>]*>([^<]*)</title>`)

var blockingPhrases = []string{
	"Sorry, your request has been denied",
	"Sorry, you have been blocked",
	"Attention Required! | Cloudflare",
	"Checking your browser before accessing",
	"Your IP is blocked",
	"Your IP has been blocked",
	"Access Denied",
	"403 Forbidden",
	"Please enable JavaScript and cookies to continue",
}

// DetectBlocking checks if an HTML response is an anti-bot or access-denied page
// instead of the requested content. Checked in order:
// 1. HTTP status code (403, 429, 503)
// 2. Exact blocking phrases
// 3. IP address in title
// 4. Error title in short HTML
// 5. noindex + empty title + short HTML
func DetectBlocking(html string, statusCode int) BlockResult {
	if statusCode == 403 || statusCode == 429 || statusCode == 503 {
		return BlockResult{Blocked: true, Reason: fmt.Sprintf("HTTP %d", statusCode)}
	}

	for _, phrase := range blockingPhrases {
		if containsIgnoreCase(html, phrase) {
			return BlockResult{Blocked: true, Reason: phrase}
		}
	}

	title := extractTitle(html)
	if ipInTitleRegex.MatchString(title) {
		return BlockResult{Blocked: true, Reason: "IP in title"}
	}

	if len(html) < 10000 {
		lowerTitle := strings.ToLower(strings.TrimSpace(title))
		if lowerTitle == "error" || lowerTitle == "access denied" {
			return BlockResult{Blocked: true, Reason: "error title"}
		}
	}

	if len(html) < 3000 {
		if containsIgnoreCase(html, "noindex") && strings.TrimSpace(title) == "" {
			return BlockResult{Blocked: true, Reason: "noindex + empty title"}
		}
	}

	return BlockResult{Blocked: false}
}

func extractTitle(html string) string {
	match := titleRegex.FindStringSubmatch(html)
	if len(match) > 1 {
		return strings.TrimSpace(match[1])
	}
	return ""
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
