package payment

import "github.com/PuerkitoBio/goquery"

const minRowFields = 3

// ExtractTables collects payment rows from every table in the document.
func ExtractTables(doc *goquery.Document) []Record {
	var records []Record
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		records = append(records, ExtractTable(table)...)
	})
	return records
}

// ExtractTable returns the payment rows of a single table, or nil when the
// table does not look like a payment table or its header cannot be mapped.
func ExtractTable(table *goquery.Selection) []Record {
	if !IsPaymentTable(table.Text()) {
		return nil
	}

	rows := table.Find("tr")
	headerIdx, headers, ok := FindHeaderRow(rows)
	if !ok {
		return nil
	}

	mapping := MapHeaders(headers)
	if DistinctColumns(mapping) < minMappedColumns {
		return nil
	}

	var records []Record
	rows.Slice(headerIdx+1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() != len(headers) {
			return
		}

		rec := make(Record)
		cells.Each(func(i int, cell *goquery.Selection) {
			col, mapped := mapping[i]
			if !mapped {
				return
			}
			if text := CleanText(cell.Text()); text != "" {
				rec[col] = text
			}
		})

		if len(rec) >= minRowFields {
			records = append(records, withCalculatedColumns(rec))
		}
	})

	return records
}
