package xlsxexport_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"invoicegen/internal/domain"
	"invoicegen/internal/xlsxexport"
)

func TestWriter_RoundTrip(t *testing.T) {
	w, err := xlsxexport.NewWriter()
	require.NoError(t, err)

	created := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)
	records := []domain.InvoiceRecord{
		{
			InvoiceNo:     "GII/2026/042",
			PO:            "PO-1042",
			InvoiceDate:   "15/08/2026",
			BillingName:   "Star Dental Clinic",
			BillingState:  "Punjab",
			ShippingName:  "Star Dental Clinic",
			TaxType:       domain.TaxTypeIGST,
			Subtotal:      decimal.NewFromInt(59300),
			TotalTax:      decimal.NewFromInt(10674),
			TotalAfterTax: decimal.NewFromInt(69974),
			ItemCount:     2,
			ArchiveKey:    "invoices/Invoice_GII_2026_042.pdf",
			CreatedAt:     created,
		},
	}
	require.NoError(t, w.WriteRecords(records))

	data, err := w.Bytes()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Invoice No", rows[0][0])
	assert.Equal(t, "Total After Tax", rows[0][9])

	assert.Equal(t, "GII/2026/042", rows[1][0])
	assert.Equal(t, "Punjab", rows[1][4])
	assert.Equal(t, "IGST", rows[1][6])
	assert.Equal(t, "69974", rows[1][9])
	assert.Equal(t, "2026-08-15T10:30:00Z", rows[1][12])
}

func TestWriter_EmptyRegister(t *testing.T) {
	w, err := xlsxexport.NewWriter()
	require.NoError(t, err)
	require.NoError(t, w.WriteRecords(nil))

	data, err := w.Bytes()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"GII/2026/042", "GII_2026_042"},
		{"already-clean_name", "already-clean_name"},
		{"a  b//c", "a_b_c"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, xlsxexport.SanitizeFilename(tc.in), tc.in)
	}
}

func TestBuildFilename(t *testing.T) {
	name := xlsxexport.BuildFilename("invoice_register")
	assert.Contains(t, name, "invoice_register_")
	assert.True(t, len(name) > len("invoice_register_.xlsx"))
	assert.Equal(t, ".xlsx", name[len(name)-5:])
}
