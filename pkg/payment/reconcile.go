package payment

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

type reconcilePair struct {
	scraped  string
	passBook string
	variance string
}

var reconcilePairs = []reconcilePair{
	{ColPrincipal, ColPrincipalPassBook, ColPrincipalVariance},
	{ColCBU, ColCBUPassBook, ColCBUVariance},
	{ColCBUWithdraw, ColCBUWithdrawPassBook, ColCBUWithdrawVariance},
}

var amountReplacer = strings.NewReplacer(
	" ", "",
	"$", "",
	"€", "",
	"£", "",
	"¥", "",
	"Rp", "",
	"IDR", "",
)

var (
	// 1,234,567.89
	commaGrouped = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)
	// 1.234.567,89
	dotGrouped = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+(,\d+)?$`)
)

// ParseAmount reads a scraped or user-entered money value. Currency
// symbols are ignored and "(12.50)" is negative. Both 1,500.00 and
// 1.500,00 grouping are accepted; a comma that is neither a thousands
// group nor the decimal mark of a dot-grouped number makes the value
// unparseable.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = amountReplacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, false
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	switch {
	case commaGrouped.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	case dotGrouped.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case strings.Contains(s, ","):
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// Reconcile sets each variance column to scraped minus pass-book value
// wherever both sides parse as amounts. Other columns are left untouched.
func Reconcile(r Record) Record {
	reconcile(r)
	return r
}

// ReconcileAll runs Reconcile on every record and returns how many
// variance values were computed.
func ReconcileAll(records []Record) int {
	n := 0
	for _, r := range records {
		if r != nil {
			n += reconcile(r)
		}
	}
	return n
}

func reconcile(r Record) int {
	n := 0
	for _, p := range reconcilePairs {
		scraped, ok := ParseAmount(r[p.scraped])
		if !ok {
			continue
		}
		passBook, ok := ParseAmount(r[p.passBook])
		if !ok {
			continue
		}
		r[p.variance] = scraped.Sub(passBook).StringFixed(2)
		n++
	}
	return n
}
