package render

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"invoicegen/internal/domain"
	"invoicegen/internal/gst"
)

func sampleInvoice() *domain.Invoice {
	items := []domain.LineItem{
		{Name: "Teak Wood Panel", HSNCode: "44071020", Quantity: 2, Rate: decimal.NewFromInt(5000)},
		{Name: "Office Chair", HSNCode: "94013000", Quantity: 4, Rate: decimal.NewFromInt(3200)},
	}
	for i := range items {
		items[i].Recompute()
	}

	calc := gst.NewCalculator(gst.DefaultRates())
	totals := calc.ComputeTotals(items, decimal.NewFromInt(500), "Delhi", "Delhi")

	return &domain.Invoice{
		InvoiceRequest: domain.InvoiceRequest{
			InvoiceNo: "GII/2026/017",
			PO:        "PO-88",
			Date:      "31/03/2026",
			MBNumber:  "MB-5",
			Billing: domain.Party{
				Name: "Acme Clinic", Address: "14 Karol Bagh, New Delhi",
				GSTIN: "07AAPFU0939F1ZV", State: "Delhi", StateCode: "07",
			},
			Shipping: domain.Party{
				Name: "Acme Warehouse", Address: "B-2 Okhla Phase II, New Delhi",
				State: "Delhi", StateCode: "07",
			},
			Products:       items,
			PackingCharges: decimal.NewFromInt(500),
		},
		Totals:        totals,
		AmountInWords: gst.AmountInWords(totals.TotalAfterTax),
		Company: domain.CompanyProfile{
			Name:    "Globel Interiors India",
			Address: "Kirti Nagar, New Delhi",
			GSTIN:   "07AWXPS9168G1ZG",
			State:   "Delhi",
			Phone:   "9810012345",
			Email:   "sales@globelinteriors.in",
			Bank: domain.BankDetails{
				BankName:      "HDFC Bank",
				AccountNumber: "123456789012",
				IFSCCode:      "HDFC0001234",
				Branch:        "Kirti Nagar",
			},
		},
	}
}

func TestRender_Complete(t *testing.T) {
	r := NewPDFRenderer(gst.DefaultRates())

	result, err := r.Render(context.Background(), sampleInvoice())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("Render() returned empty bytes")
	}
	if len(result) > 5 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header")
	}
}

func TestRender_InterstateInvoice(t *testing.T) {
	inv := sampleInvoice()
	calc := gst.NewCalculator(gst.DefaultRates())
	inv.Billing.State = "Punjab"
	inv.Billing.StateCode = "03"
	inv.Totals = calc.ComputeTotals(inv.Products, inv.PackingCharges, "Delhi", "Punjab")

	r := NewPDFRenderer(gst.DefaultRates())

	result, err := r.Render(context.Background(), inv)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("Render() returned empty bytes")
	}
}

func TestRender_MinimalInvoice(t *testing.T) {
	inv := &domain.Invoice{
		InvoiceRequest: domain.InvoiceRequest{
			InvoiceNo: "GII/2026/001",
			Date:      "01/04/2026",
			Products: []domain.LineItem{
				{Name: "Plywood Sheet", HSNCode: "44081010", Quantity: 1, Rate: decimal.NewFromInt(900), Amount: decimal.NewFromInt(900)},
			},
		},
		Company: domain.CompanyProfile{Name: "Globel Interiors India"},
	}

	r := NewPDFRenderer(gst.DefaultRates())

	result, err := r.Render(context.Background(), inv)
	if err != nil {
		t.Fatalf("Render() with minimal invoice error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("Render() returned empty bytes")
	}
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"small", decimal.NewFromInt(500), "500.00"},
		{"thousands", decimal.NewFromInt(23456), "23,456.00"},
		{"lakhs", decimal.NewFromFloat(1234567.89), "12,34,567.89"},
		{"crores", decimal.NewFromFloat(12345678.9), "1,23,45,678.90"},
		{"negative", decimal.NewFromInt(-1500), "-1,500.00"},
		{"zero", decimal.Zero, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatINR(tt.amount)
			if got != tt.want {
				t.Errorf("FormatINR(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestStateWithCode(t *testing.T) {
	tests := []struct {
		name  string
		party domain.Party
		want  string
	}{
		{"name and code", domain.Party{State: "Delhi", StateCode: "07"}, "Delhi (07)"},
		{"name only", domain.Party{State: "Delhi"}, "Delhi"},
		{"empty", domain.Party{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stateWithCode(tt.party)
			if got != tt.want {
				t.Errorf("stateWithCode(%+v) = %q, want %q", tt.party, got, tt.want)
			}
		})
	}
}
