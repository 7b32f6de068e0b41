package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1,234.50", "1234.5", true},
		{"$ 1,000", "1000", true},
		{"€12.00", "12", true},
		{"(12.50)", "-12.5", true},
		{"-3", "-3", true},
		{"50.000", "50000", true},
		{"1.500.000", "1500000", true},
		{"1.500.000,75", "1500000.75", true},
		{"Rp 50.000", "50000", true},
		{"12.345", "12345", true},
		{"1,234,567", "1234567", true},
		{"12.5", "12.5", true},
		{"12,50", "0", false},
		{"1,23,456", "0", false},
		{"1.500,000.00", "0", false},
		{"", "0", false},
		{"n/a", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAmount(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestReconcile(t *testing.T) {
	r := withCalculatedColumns(Record{
		ColPrincipal:   "1,000.00",
		ColCBU:         "50.00",
		ColCBUWithdraw: "20.00",
	})
	r[ColPrincipalPassBook] = "950"
	r[ColCBUWithdrawPassBook] = "25.5"
	r[ColCBUVariance] = "manual"

	Reconcile(r)

	assert.Equal(t, "50.00", r[ColPrincipalVariance])
	assert.Equal(t, "manual", r[ColCBUVariance], "no pass-book value, variance kept")
	assert.Equal(t, "-5.50", r[ColCBUWithdrawVariance])
	assert.Equal(t, "1,000.00", r[ColPrincipal])
}

func TestReconcileAll(t *testing.T) {
	records := sampleRecords()
	records[0][ColPrincipalPassBook] = "1000"
	records[1][ColCBUPassBook] = "45"
	records[1][ColPrincipalPassBook] = "abc"

	assert.Equal(t, 2, ReconcileAll(records))
	assert.Equal(t, "0.00", records[0][ColPrincipalVariance])
	assert.Equal(t, "5.00", records[1][ColCBUVariance])
	assert.Equal(t, "", records[1][ColPrincipalVariance])
}

func TestReconcile_DotGroupedAmounts(t *testing.T) {
	r := withCalculatedColumns(Record{
		ColPrincipal: "50.000",
		ColCBU:       "12,50",
	})
	r[ColPrincipalPassBook] = "50000"
	r[ColCBUPassBook] = "12.50"
	r[ColCBUVariance] = "entered"

	Reconcile(r)

	assert.Equal(t, "0.00", r[ColPrincipalVariance])
	assert.Equal(t, "entered", r[ColCBUVariance], "ambiguous amount leaves variance alone")
}
