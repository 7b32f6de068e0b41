package payment

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// minMappedColumns is the number of distinct target columns a header row
// must resolve before its table is trusted.
const minMappedColumns = 3

type headerRule struct {
	name   string
	match  func(h string) bool
	column string
}

func equals(values ...string) func(string) bool {
	return func(h string) bool {
		for _, v := range values {
			if h == v {
				return true
			}
		}
		return false
	}
}

func containsAny(subs ...string) func(string) bool {
	return func(h string) bool {
		for _, s := range subs {
			if strings.Contains(h, s) {
				return true
			}
		}
		return false
	}
}

// Evaluated top to bottom, first match wins. Keep the order: the fuzzy
// rules overlap and later ones rely on earlier ones having been tried.
var headerRules = []headerRule{
	{"exact_date", equals("date"), ColDate},
	{"exact_receipt", equals("receipt no", "receipt", "receipt number", "ref no", "reference", "transaction id"), ColReceiptNo},
	{"exact_principal", equals("principal"), ColPrincipal},
	{"exact_pen", equals("pen"), ColPen},
	{"exact_cbu", equals("cbu"), ColCBU},
	{"exact_cbu_withdraw", equals("cbu withdraw"), ColCBUWithdraw},
	{"exact_collector", equals("collector"), ColCollector},

	{"short_date", func(h string) bool {
		return strings.Contains(h, "date") && utf8.RuneCountInString(h) <= 10
	}, ColDate},
	{"penalty", equals("penalty", "pen", "denda"), ColPen},
	{"principal", containsAny("principal", "pokok"), ColPrincipal},
	{"cbu_withdraw", func(h string) bool {
		return strings.HasPrefix(h, "cbu") && containsAny("withdraw", "tarik")(h)
	}, ColCBUWithdraw},
	{"cbu", func(h string) bool {
		return strings.HasPrefix(h, "cbu")
	}, ColCBU},
	{"collector", containsAny("collector", "kolektor"), ColCollector},
}

// MapHeader resolves a single header label to a target column.
func MapHeader(header string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return "", false
	}
	for _, rule := range headerRules {
		if rule.match(h) {
			return rule.column, true
		}
	}
	return "", false
}

// MapHeaders maps header positions to target column names. Unmapped
// positions are absent from the result.
func MapHeaders(headers []string) map[int]string {
	mapping := make(map[int]string)
	for i, h := range headers {
		if col, ok := MapHeader(h); ok {
			mapping[i] = col
		}
	}
	return mapping
}

// DistinctColumns counts the different target columns in a mapping.
func DistinctColumns(mapping map[int]string) int {
	seen := make(map[string]struct{}, len(mapping))
	for _, col := range mapping {
		seen[col] = struct{}{}
	}
	return len(seen)
}

// FindHeaderRow returns the index of the header row among rows and its
// cleaned labels. Rows with th cells win; otherwise the first row of bold
// cells or of cells naming a target column. ok is false when none qualifies.
func FindHeaderRow(rows *goquery.Selection) (index int, headers []string, ok bool) {
	index = -1
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		if th := row.Find("th"); th.Length() > 0 {
			headers = cellTexts(th)
			index = i
			return false
		}

		td := row.Find("td")
		if td.Length() == 0 {
			return true
		}
		texts := cellTexts(td)
		if countBold(td) > 0 || containsHeaderKeywords(texts) {
			headers = texts
			index = i
			return false
		}
		return true
	})
	return index, headers, index >= 0 && len(headers) > 0
}

func cellTexts(cells *goquery.Selection) []string {
	texts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, c *goquery.Selection) {
		texts = append(texts, CleanText(c.Text()))
	})
	return texts
}

func countBold(cells *goquery.Selection) int {
	n := 0
	cells.Each(func(_ int, c *goquery.Selection) {
		if c.Find("b, strong").Length() > 0 {
			n++
			return
		}
		html, err := goquery.OuterHtml(c)
		if err != nil {
			return
		}
		compact := strings.ReplaceAll(strings.ToLower(html), " ", "")
		if strings.Contains(compact, "font-weight:bold") {
			n++
		}
	})
	return n
}

func containsHeaderKeywords(headers []string) bool {
	joined := strings.ToLower(strings.Join(headers, " "))
	for _, target := range TargetColumns {
		if strings.Contains(joined, strings.ToLower(target)) {
			return true
		}
	}
	return false
}
