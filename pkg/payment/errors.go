package payment

import "errors"

var (
	// ErrFetchFailed wraps any failure to retrieve the page
	ErrFetchFailed = errors.New("failed to fetch URL")

	// ErrParseFailed wraps any failure to parse the fetched document
	ErrParseFailed = errors.New("failed to scrape data")

	// ErrRecordNotFound is returned when an edit targets a row index that does not exist
	ErrRecordNotFound = errors.New("record not found")

	// ErrColumnNotEditable is returned when an edit targets a scraped column
	ErrColumnNotEditable = errors.New("column is not editable")
)
