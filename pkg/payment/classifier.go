package payment

import "strings"

var paymentIndicators = []string{
	"receipt",
	"date",
	"principal",
	"collector",
	"pen",
	"cbu",
	"payment",
	"amount paid",
}

const minPaymentIndicators = 4

// IsPaymentTable reports whether the table text mentions enough payment keywords.
func IsPaymentTable(text string) bool {
	text = strings.ToLower(text)
	found := 0
	for _, ind := range paymentIndicators {
		if strings.Contains(text, ind) {
			found++
		}
	}
	return found >= minPaymentIndicators
}
