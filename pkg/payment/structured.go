package payment

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const minStructuredFields = 2

// ExtractStructured scans block elements for "key: value" text and groups
// matching pairs into records. Used when no table yields data.
//
// Nested elements are visited after their parent, so a repeated key
// overwrites the value taken from the parent's concatenated text.
func ExtractStructured(doc *goquery.Document) []Record {
	var records []Record
	current := make(Record)

	flush := func() {
		if len(current) == 0 {
			return
		}
		records = append(records, withCalculatedColumns(current))
		current = make(Record)
	}

	doc.Find("div, span, p").Each(func(_ int, s *goquery.Selection) {
		text := CleanText(s.Text())
		if key, value, found := strings.Cut(text, ":"); found {
			if col, ok := matchTargetColumn(strings.TrimSpace(key)); ok {
				current[col] = strings.TrimSpace(value)
			}
		}

		if len(current) >= minStructuredFields {
			flush()
		}
	})
	flush()

	return records
}

func matchTargetColumn(key string) (string, bool) {
	key = strings.ToLower(key)
	for _, target := range TargetColumns {
		if strings.Contains(key, strings.ToLower(target)) {
			return target, true
		}
	}
	return "", false
}
