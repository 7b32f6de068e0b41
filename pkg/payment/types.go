package payment

// Record is one extracted payment row keyed by column name.
type Record map[string]string

const (
	ColReceiptNo   = "Receipt No"
	ColDate        = "Date"
	ColPrincipal   = "Principal"
	ColPen         = "Pen"
	ColCBU         = "CBU"
	ColCBUWithdraw = "CBU withdraw"
	ColCollector   = "Collector"

	ColPrincipalPassBook   = "Principal_PassBook"
	ColPrincipalVariance   = "Principal_Variance"
	ColCBUPassBook         = "CBU_PassBook"
	ColCBUVariance         = "CBU_Variance"
	ColCBUWithdrawPassBook = "CBU_withdraw_PassBook"
	ColCBUWithdrawVariance = "CBU_withdraw_Variance"
)

// TargetColumns are the scraped columns, in matching order.
var TargetColumns = []string{
	ColReceiptNo,
	ColDate,
	ColPrincipal,
	ColPen,
	ColCBU,
	ColCBUWithdraw,
	ColCollector,
}

// CalculatedColumns are filled in by the user during reconciliation.
var CalculatedColumns = []string{
	ColPrincipalPassBook,
	ColPrincipalVariance,
	ColCBUPassBook,
	ColCBUVariance,
	ColCBUWithdrawPassBook,
	ColCBUWithdrawVariance,
}

// ExportColumns is the fixed spreadsheet column order.
var ExportColumns = []string{
	ColReceiptNo,
	ColDate,
	ColPrincipal,
	ColPen,
	ColPrincipalPassBook,
	ColPrincipalVariance,
	ColCBU,
	ColCBUPassBook,
	ColCBUVariance,
	ColCBUWithdraw,
	ColCBUWithdrawPassBook,
	ColCBUWithdrawVariance,
	ColCollector,
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Columns returns the columns present in r, in export order.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r))
	for _, c := range ExportColumns {
		if _, ok := r[c]; ok {
			cols = append(cols, c)
		}
	}
	return cols
}

func withCalculatedColumns(r Record) Record {
	for _, c := range CalculatedColumns {
		if _, ok := r[c]; !ok {
			r[c] = ""
		}
	}
	return r
}
