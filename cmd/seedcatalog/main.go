// Command seedcatalog converts a product catalog Excel workbook into a SQL
// seed file. The first sheet is read with a header row followed by one
// product per row: column A = product name, column B = HSN code.
// Usage: go run ./cmd/seedcatalog [catalog.xlsx]
// Output: db/seeds/products.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"invoicegen/internal/domain"
)

const batchSize = 500

type catalogEntry struct {
	name    string
	hsnCode string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxPath := "catalog.xlsx"
	if len(os.Args) > 1 {
		xlsxPath = os.Args[1]
	}
	outPath := "db/seeds/products.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parseCatalogSheet(f)
	if err != nil {
		return fmt.Errorf("parse catalog sheet: %w", err)
	}
	log.Printf("catalog sheet: %d products", len(entries))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- Product catalog seed data generated from Excel.",
		fmt.Sprintf("-- %d products in batches of %d.", len(entries), batchSize),
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}

	log.Printf("Generated %d products (%d batches) in %s",
		len(entries), (len(entries)+batchSize-1)/batchSize, outPath)
	return nil
}

// parseCatalogSheet reads the first sheet. Data starts at row index 1,
// below the header. Rows without a name are skipped; a missing HSN code
// falls back to the furniture timber default.
func parseCatalogSheet(f *excelize.File) ([]catalogEntry, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []catalogEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		name := strings.TrimSpace(cellVal(row, 0))
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		hsn := strings.TrimSpace(cellVal(row, 1))
		if hsn == "" {
			hsn = domain.DefaultHSNCode
		}
		entries = append(entries, catalogEntry{name: name, hsnCode: hsn})
	}
	return entries, nil
}

func writeBatch(out *os.File, batch []catalogEntry) error {
	if _, err := fmt.Fprintln(out, "INSERT INTO products (name, hsn_code) VALUES"); err != nil {
		return err
	}
	for i, e := range batch {
		sep := ","
		if i == len(batch)-1 {
			sep = ""
		}
		line := fmt.Sprintf("  ('%s', '%s')%s", sqlEscape(e.name), sqlEscape(e.hsnCode), sep)
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(out, "ON CONFLICT (lower(name)) DO NOTHING;")
	return err
}

func cellVal(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func sqlEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
