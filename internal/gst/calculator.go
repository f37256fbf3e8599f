// Package gst implements GST tax determination and invoice totals.
package gst

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"invoicegen/internal/domain"
)

// Rates holds the GST rates used for tax determination. The values are
// configuration, not hard-coded law; defaults track current GST rates for
// the supplier's product category.
type Rates struct {
	CGST decimal.Decimal
	SGST decimal.Decimal
	IGST decimal.Decimal
}

// DefaultRates returns the current GST rates: 9% CGST + 9% SGST in-state,
// 18% IGST interstate.
func DefaultRates() Rates {
	return Rates{
		CGST: decimal.NewFromFloat(0.09),
		SGST: decimal.NewFromFloat(0.09),
		IGST: decimal.NewFromFloat(0.18),
	}
}

// ParseRates builds Rates from decimal-fraction strings ("0.09" = 9%).
// Used by the configuration layer; any unparsable value fails loudly rather
// than silently taxing at zero.
func ParseRates(cgst, sgst, igst string) (Rates, error) {
	c, err := decimal.NewFromString(cgst)
	if err != nil {
		return Rates{}, fmt.Errorf("parsing cgst rate %q: %w", cgst, err)
	}
	s, err := decimal.NewFromString(sgst)
	if err != nil {
		return Rates{}, fmt.Errorf("parsing sgst rate %q: %w", sgst, err)
	}
	i, err := decimal.NewFromString(igst)
	if err != nil {
		return Rates{}, fmt.Errorf("parsing igst rate %q: %w", igst, err)
	}
	return Rates{CGST: c, SGST: s, IGST: i}, nil
}

// Calculator computes tax breakdowns. It holds no mutable state and is safe
// to call on every edit; identical inputs always yield identical output.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// ComputeTotals computes the full tax breakdown for a set of line items.
// Each line amount is recomputed as quantity x rate; caller-supplied amounts
// are never trusted. An empty customer state means the form is incomplete
// and no tax is computed.
func (c *Calculator) ComputeTotals(
	items []domain.LineItem,
	packingCharges decimal.Decimal,
	supplierState, customerState string,
) domain.TaxBreakdown {
	subtotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.Rate.Mul(decimal.NewFromInt(int64(li.Quantity))))
	}
	totalBeforeTax := subtotal.Add(packingCharges)

	b := domain.TaxBreakdown{
		Subtotal:       subtotal,
		PackingCharges: packingCharges,
		TotalBeforeTax: totalBeforeTax,
		TaxType:        domain.TaxTypeNone,
		CGST:           decimal.Zero,
		SGST:           decimal.Zero,
		IGST:           decimal.Zero,
	}

	supplier := normalizeState(supplierState)
	customer := normalizeState(customerState)

	switch {
	case customer == "":
		// Incomplete form, not a zero-rated supply.
	case supplier == customer:
		b.TaxType = domain.TaxTypeSGST
		b.CGST = totalBeforeTax.Mul(c.rates.CGST).Round(2)
		b.SGST = totalBeforeTax.Mul(c.rates.SGST).Round(2)
	default:
		b.TaxType = domain.TaxTypeIGST
		b.IGST = totalBeforeTax.Mul(c.rates.IGST).Round(2)
	}

	b.TotalTax = b.CGST.Add(b.SGST).Add(b.IGST)
	b.TotalAfterTax = totalBeforeTax.Add(b.TotalTax).Round(2)
	return b
}

func normalizeState(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
