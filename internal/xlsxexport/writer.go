// Package xlsxexport exports the invoice register as an Excel workbook.
package xlsxexport

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"invoicegen/internal/domain"
)

const sheetName = "Invoices"

// columns defines the header row of the register export.
var columns = []string{
	"Invoice No",
	"PO",
	"Invoice Date",
	"Billing Name",
	"Billing State",
	"Shipping Name",
	"Tax Type",
	"Subtotal",
	"Total Tax",
	"Total After Tax",
	"Item Count",
	"Archive Key",
	"Created At",
}

// Writer builds an xlsx workbook of invoice register rows.
type Writer struct {
	f       *excelize.File
	nextRow int
}

// NewWriter creates a Writer with the header row already written.
func NewWriter() (*Writer, error) {
	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), sheetName)

	w := &Writer{f: f, nextRow: 1}
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := w.writeRow(header); err != nil {
		return nil, err
	}
	return w, nil
}

// WriteRecords appends a batch of register rows.
func (w *Writer) WriteRecords(records []domain.InvoiceRecord) error {
	for i := range records {
		if err := w.writeRow(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Bytes finalizes the workbook and returns its bytes.
func (w *Writer) Bytes() ([]byte, error) {
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	if err := w.f.Close(); err != nil {
		return nil, fmt.Errorf("closing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *Writer) writeRow(values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, w.nextRow)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", w.nextRow, err)
	}
	w.nextRow++
	return nil
}

func recordToRow(rec *domain.InvoiceRecord) []interface{} {
	subtotal, _ := rec.Subtotal.Float64()
	totalTax, _ := rec.TotalTax.Float64()
	totalAfterTax, _ := rec.TotalAfterTax.Float64()

	return []interface{}{
		rec.InvoiceNo,
		rec.PO,
		rec.InvoiceDate,
		rec.BillingName,
		rec.BillingState,
		rec.ShippingName,
		string(rec.TaxType),
		subtotal,
		totalTax,
		totalAfterTax,
		rec.ItemCount,
		rec.ArchiveKey,
		rec.CreatedAt.Format(time.RFC3339),
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.xlsx
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.xlsx", sanitized, date)
}
