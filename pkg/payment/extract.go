package payment

import "github.com/PuerkitoBio/goquery"

const (
	SourceTable      = "table"
	SourceStructured = "structured"
)

// Extraction is the result of one pipeline run.
type Extraction struct {
	Records []Record
	Source  string
	Raw     int
}

// Analyze runs the full pipeline on a parsed document: tables first, the
// key/value fallback when no table matched, then deduplication.
func Analyze(doc *goquery.Document) Extraction {
	source := SourceTable
	records := ExtractTables(doc)
	if len(records) == 0 {
		records = ExtractStructured(doc)
		source = SourceStructured
	}
	return Extraction{
		Records: Dedupe(records),
		Source:  source,
		Raw:     len(records),
	}
}

// Extract returns the deduplicated records of doc.
func Extract(doc *goquery.Document) []Record {
	return Analyze(doc).Records
}
