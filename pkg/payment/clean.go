package payment

import (
	"regexp"
	"strings"
)

var disallowedChars = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_\s$€£¥.,:\-/()%]`)

// CleanText collapses whitespace and strips characters outside the
// word/currency/punctuation whitelist.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	s = disallowedChars.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
