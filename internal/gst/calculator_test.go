package gst_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/domain"
	"invoicegen/internal/gst"
)

func item(name string, qty int, rate float64) domain.LineItem {
	li := domain.LineItem{Name: name, HSNCode: domain.DefaultHSNCode, Quantity: qty, Rate: decimal.NewFromFloat(rate)}
	li.Recompute()
	return li
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestComputeTotals_SameState(t *testing.T) {
	calc := gst.NewCalculator(gst.DefaultRates())

	// Delhi to Delhi, qty=2 rate=5000.
	b := calc.ComputeTotals([]domain.LineItem{item("Teak Panel", 2, 5000)}, decimal.Zero, "Delhi", "Delhi")

	assert.Equal(t, domain.TaxTypeSGST, b.TaxType)
	assert.True(t, b.Subtotal.Equal(dec(10000)), "subtotal = %s", b.Subtotal)
	assert.True(t, b.CGST.Equal(dec(900)), "cgst = %s", b.CGST)
	assert.True(t, b.SGST.Equal(dec(900)), "sgst = %s", b.SGST)
	assert.True(t, b.IGST.IsZero())
	assert.True(t, b.TotalAfterTax.Equal(dec(11800)), "total = %s", b.TotalAfterTax)
}

func TestComputeTotals_Interstate(t *testing.T) {
	calc := gst.NewCalculator(gst.DefaultRates())

	b := calc.ComputeTotals([]domain.LineItem{item("Teak Panel", 2, 5000)}, decimal.Zero, "Delhi", "Punjab")

	assert.Equal(t, domain.TaxTypeIGST, b.TaxType)
	assert.True(t, b.IGST.Equal(dec(1800)), "igst = %s", b.IGST)
	assert.True(t, b.CGST.IsZero())
	assert.True(t, b.SGST.IsZero())
	assert.True(t, b.TotalAfterTax.Equal(dec(11800)), "total = %s", b.TotalAfterTax)
}

func TestComputeTotals_EmptyCustomerState(t *testing.T) {
	calc := gst.NewCalculator(gst.DefaultRates())

	b := calc.ComputeTotals([]domain.LineItem{item("Teak Panel", 2, 5000)}, dec(250), "Delhi", "")

	assert.Equal(t, domain.TaxTypeNone, b.TaxType)
	assert.True(t, b.CGST.IsZero())
	assert.True(t, b.SGST.IsZero())
	assert.True(t, b.IGST.IsZero())
	assert.True(t, b.TotalAfterTax.Equal(b.TotalBeforeTax))
}

func TestComputeTotals_StateComparisonIsCaseInsensitive(t *testing.T) {
	calc := gst.NewCalculator(gst.DefaultRates())

	for _, customer := range []string{"delhi", "DELHI", "  Delhi  "} {
		t.Run(customer, func(t *testing.T) {
			b := calc.ComputeTotals([]domain.LineItem{item("Chair", 1, 100)}, decimal.Zero, "Delhi", customer)
			assert.Equal(t, domain.TaxTypeSGST, b.TaxType)
		})
	}
}

func TestComputeTotals_IgnoresCallerAmount(t *testing.T) {
	calc := gst.NewCalculator(gst.DefaultRates())

	li := item("Chair", 3, 400)
	li.Amount = dec(999999) // tampered; must be recomputed from qty x rate

	b := calc.ComputeTotals([]domain.LineItem{li}, decimal.Zero, "Delhi", "Punjab")
	assert.True(t, b.Subtotal.Equal(dec(1200)), "subtotal = %s", b.Subtotal)
}

func TestComputeTotals_PackingCharges(t *testing.T) {
	calc := gst.NewCalculator(gst.DefaultRates())

	b := calc.ComputeTotals([]domain.LineItem{item("Chair", 1, 1000)}, dec(500), "Delhi", "Delhi")

	assert.True(t, b.TotalBeforeTax.Equal(dec(1500)))
	assert.True(t, b.CGST.Equal(dec(135)), "cgst = %s", b.CGST)
	assert.True(t, b.SGST.Equal(dec(135)), "sgst = %s", b.SGST)
}

func TestComputeTotals_DecimalAccumulation(t *testing.T) {
	calc := gst.NewCalculator(gst.DefaultRates())

	// 0.1 rates accumulate exactly under decimal arithmetic; under binary
	// floats 100 x 0.1 drifts off 10.00.
	items := make([]domain.LineItem, 100)
	for i := range items {
		items[i] = item("Washer", 1, 0.1)
	}

	b := calc.ComputeTotals(items, decimal.Zero, "Delhi", "")
	assert.True(t, b.Subtotal.Equal(dec(10)), "subtotal = %s", b.Subtotal)
}

func TestComputeTotals_Idempotent(t *testing.T) {
	calc := gst.NewCalculator(gst.DefaultRates())
	items := []domain.LineItem{item("Chair", 7, 1234.56), item("Table", 2, 9876.54)}

	first := calc.ComputeTotals(items, dec(300), "Delhi", "Punjab")
	second := calc.ComputeTotals(items, dec(300), "Delhi", "Punjab")

	assert.Equal(t, first, second)
}

func TestComputeTotals_InvariantExclusiveBranches(t *testing.T) {
	calc := gst.NewCalculator(gst.DefaultRates())

	pairs := []struct {
		name     string
		customer string
	}{
		{"same_state", "Delhi"},
		{"interstate", "Kerala"},
		{"empty", ""},
	}
	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			b := calc.ComputeTotals([]domain.LineItem{item("Chair", 5, 321.99)}, dec(50), "Delhi", tt.customer)

			split := b.CGST.IsPositive() || b.SGST.IsPositive()
			if split {
				require.True(t, b.CGST.IsPositive() && b.SGST.IsPositive(), "cgst and sgst must appear together")
				assert.True(t, b.IGST.IsZero())
			}
			if b.IGST.IsPositive() {
				assert.True(t, b.CGST.IsZero() && b.SGST.IsZero())
			}
			assert.True(t, b.TotalAfterTax.Equal(b.TotalBeforeTax.Add(b.TotalTax)))
		})
	}
}

func TestComputeTotals_ConfigurableRates(t *testing.T) {
	calc := gst.NewCalculator(gst.Rates{
		CGST: dec(0.06), SGST: dec(0.06), IGST: dec(0.12),
	})

	b := calc.ComputeTotals([]domain.LineItem{item("Chair", 1, 1000)}, decimal.Zero, "Delhi", "Punjab")
	assert.True(t, b.IGST.Equal(dec(120)), "igst = %s", b.IGST)
}
