package export

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/cbu-recon/payscraper/pkg/payment"
)

const (
	SheetName   = "Payment Data"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	maxColumnWidth = 50
)

// Workbook builds a single-sheet workbook with one row per record in
// payment.ExportColumns order. The caller must Close the returned file.
func Workbook(records []payment.Record) (*excelize.File, error) {
	f := excelize.NewFile()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	columns := payment.ExportColumns
	widths := make([]int, len(columns))

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col
		widths[i] = utf8.RuneCountInString(col)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for r, rec := range records {
		row := make([]any, len(columns))
		for i, col := range columns {
			v := rec[col]
			row[i] = v
			widths[i] = max(widths[i], utf8.RuneCountInString(v))
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", r, err)
		}
	}

	if err := styleHeader(f, len(columns)); err != nil {
		f.Close()
		return nil, err
	}

	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, float64(min(w+2, maxColumnWidth))); err != nil {
			f.Close()
			return nil, fmt.Errorf("set width %s: %w", name, err)
		}
	}

	return f, nil
}

func styleHeader(f *excelize.File, columns int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, "A1", last, style)
}

// Write streams the workbook for records to w.
func Write(w io.Writer, records []payment.Record) error {
	f, err := Workbook(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// FileName returns the download name for a session export, e.g.
// payment_data_coop.example_1a2b3c4d.xlsx.
func FileName(pageURL, sessionID string) string {
	host := pageURL
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		host = u.Host
	}
	host = strings.ReplaceAll(host, "www.", "")

	id := sessionID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("payment_data_%s_%s.xlsx", host, id)
}
