package draft

import (
	"github.com/shopspring/decimal"

	"invoicegen/internal/domain"
)

// Form is the complete editable state of one invoice. It is created fresh
// per editing session and discarded on navigation away; drafts are never
// persisted.
type Form struct {
	InvoiceNo string
	PO        string
	Date      string // YYYY-MM-DD, the editing-widget representation
	MBNumber  string

	Billing           domain.Party
	Shipping          domain.Party
	ShipSameAsBilling bool

	Items          *Table
	PackingCharges decimal.Decimal
}

// NewForm returns a form with one default line-item row.
func NewForm() *Form {
	f := &Form{Items: NewTable()}
	f.Items.AddRow()
	return f
}

// SyncShipping copies the billing party into shipping when the same-as-
// billing flag is set. The copy is structural: later billing edits do not
// leak into shipping unless SyncShipping runs again.
func (f *Form) SyncShipping() {
	if f.ShipSameAsBilling {
		f.Shipping = f.Billing
	}
}
