package draft

import (
	"strings"

	"invoicegen/internal/domain"
)

// Assemble validates and serializes the form into the invoice generation
// payload. Only submittable rows are included; cross-field validity (rate
// above zero, positive quantity) is rechecked here even when per-field
// validation has already passed. The form itself is never mutated, so a
// failed submission loses no entered state.
func (s *Session) Assemble(f *Form) (*domain.InvoiceRequest, error) {
	if strings.TrimSpace(f.InvoiceNo) == "" || strings.TrimSpace(f.Date) == "" {
		return nil, domain.ErrMissingRequiredField
	}
	wireDate := ToWireDate(f.Date)
	if wireDate == "" {
		return nil, domain.ErrInvalidDate
	}

	items := f.Items.ValidLineItems()
	if len(items) == 0 {
		return nil, domain.ErrNoValidProducts
	}

	billing := f.Billing
	shipping := f.Shipping
	if f.ShipSameAsBilling {
		shipping = billing
	}
	if billing.StateCode == "" {
		billing.StateCode = s.StateCodeFor(billing.State)
	}
	if shipping.StateCode == "" {
		shipping.StateCode = s.StateCodeFor(shipping.State)
	}

	return &domain.InvoiceRequest{
		InvoiceNo:      f.InvoiceNo,
		PO:             f.PO,
		Date:           wireDate,
		MBNumber:       f.MBNumber,
		Billing:        billing,
		Shipping:       shipping,
		Products:       items,
		PackingCharges: f.PackingCharges,
	}, nil
}
