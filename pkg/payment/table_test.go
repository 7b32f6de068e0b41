package payment

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const ledgerHTML = `<html><body>
<table id="ledger">
  <tr><th>Date</th><th>Principal</th><th>Pen</th><th>CBU</th><th>Collector</th></tr>
  <tr><td>01/02/2024</td><td>1,000.00</td><td>0.00</td><td>50.00</td><td>Maria</td></tr>
  <tr><td>08/02/2024</td><td>1,000.00</td><td></td><td>50.00</td><td>Maria</td></tr>
</table>
</body></html>`

func TestExtractTable_HeaderCells(t *testing.T) {
	doc := parseDoc(t, ledgerHTML)

	records := ExtractTable(doc.Find("#ledger"))
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "01/02/2024", first[ColDate])
	assert.Equal(t, "1,000.00", first[ColPrincipal])
	assert.Equal(t, "0.00", first[ColPen])
	assert.Equal(t, "50.00", first[ColCBU])
	assert.Equal(t, "Maria", first[ColCollector])
	for _, col := range CalculatedColumns {
		v, ok := first[col]
		assert.True(t, ok, "missing calculated column %s", col)
		assert.Empty(t, v)
	}
	assert.Len(t, first, 11)

	second := records[1]
	_, hasPen := second[ColPen]
	assert.False(t, hasPen, "empty cells must not populate a column")
	assert.Len(t, second, 10)
}

func TestExtractTable_BoldHeaderRow(t *testing.T) {
	doc := parseDoc(t, `<table>
		<tr><td><b>Receipt No</b></td><td><b>Date</b></td><td><b>Pokok</b></td><td><b>Kolektor</b></td></tr>
		<tr><td>R-001</td><td>2024-03-01</td><td>500</td><td>Jose</td></tr>
	</table>`)

	records := ExtractTable(doc.Find("table"))
	require.Len(t, records, 1)
	assert.Equal(t, "R-001", records[0][ColReceiptNo])
	assert.Equal(t, "2024-03-01", records[0][ColDate])
	assert.Equal(t, "500", records[0][ColPrincipal])
	assert.Equal(t, "Jose", records[0][ColCollector])
}

func TestExtractTable_HeaderAfterTitleRow(t *testing.T) {
	doc := parseDoc(t, `<table>
		<tr><td colspan="4">Loan ledger</td></tr>
		<tr><td>Receipt No</td><td>Date</td><td>Principal</td><td>Collector</td></tr>
		<tr><td>R-9</td><td>2024-04-01</td><td>250.00</td><td>Ana</td></tr>
	</table>`)

	records := ExtractTable(doc.Find("table"))
	require.Len(t, records, 1)
	assert.Equal(t, "R-9", records[0][ColReceiptNo])
}

func TestExtractTable_Rejections(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{
			name: "not a payment table",
			html: `<table><tr><th>Name</th><th>Age</th></tr><tr><td>Ana</td><td>30</td></tr></table>`,
		},
		{
			name: "only two mappable columns",
			html: `<table><caption>Receipt, collector and CBU summary</caption>
				<tr><th>Date</th><th>Principal</th><th>Remarks</th></tr>
				<tr><td>2024-01-01</td><td>100</td><td>ok</td></tr></table>`,
		},
		{
			name: "duplicate header columns count once",
			html: `<table><caption>receipt collector cbu</caption>
				<tr><th>Date</th><th>Due Date</th><th>Principal</th></tr>
				<tr><td>a</td><td>b</td><td>c</td></tr></table>`,
		},
		{
			name: "no header row",
			html: `<table><caption>receipt date principal collector</caption>
				<tr><td>1</td><td>2</td><td>3</td></tr></table>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.html)
			assert.Empty(t, ExtractTable(doc.Find("table")))
		})
	}
}

func TestExtractTable_RowFilters(t *testing.T) {
	doc := parseDoc(t, `<table>
		<tr><th>Date</th><th>Principal</th><th>Pen</th><th>Collector</th></tr>
		<tr><td>2024-01-01</td><td></td><td></td><td></td></tr>
		<tr><td colspan="4">Subtotal 1,000.00</td></tr>
		<tr><td>2024-01-02</td><td>100</td><td>5</td><td>Ana</td></tr>
	</table>`)

	records := ExtractTable(doc.Find("table"))
	require.Len(t, records, 1)
	assert.Equal(t, "2024-01-02", records[0][ColDate])
}

func TestExtractTables_MultipleTables(t *testing.T) {
	doc := parseDoc(t, ledgerHTML+`<table>
		<tr><th>Date</th><th>CBU Withdraw</th><th>Collector</th></tr>
		<tr><td>2024-05-01</td><td>20.00</td><td>Leo</td></tr>
		<tr><td>receipt principal pen</td><td></td><td></td></tr>
	</table>`)

	records := ExtractTables(doc)
	require.Len(t, records, 3)
	assert.Equal(t, "20.00", records[2][ColCBUWithdraw])
}
