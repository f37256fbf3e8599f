package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Invoice payloads carry plain JSON numbers, not quoted decimal strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// DefaultHSNCode is the catalog fallback HSN code for furniture timber,
// applied to new rows and to extracted products with no HSN.
const DefaultHSNCode = "44071020"

// LineItem is a single product row on an invoice. Amount is always derived
// as Quantity x Rate and is never authored independently.
type LineItem struct {
	Name     string          `db:"name" json:"name"`
	HSNCode  string          `db:"hsn_code" json:"hsn_code"`
	Quantity int             `db:"quantity" json:"quantity"`
	Rate     decimal.Decimal `db:"rate" json:"rate"`
	Amount   decimal.Decimal `db:"amount" json:"amount"`
}

// Recompute derives Amount from Quantity and Rate.
func (li *LineItem) Recompute() {
	li.Amount = li.Rate.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Valid reports whether the row is submittable: non-empty name, positive
// quantity and a positive rate.
func (li LineItem) Valid() bool {
	return strings.TrimSpace(li.Name) != "" && li.Quantity > 0 && li.Rate.IsPositive()
}

// Party is a billing or shipping party on an invoice.
type Party struct {
	Name      string `db:"name" json:"name"`
	Address   string `db:"address" json:"address"`
	GSTIN     string `db:"gstin" json:"gstin"`
	State     string `db:"state" json:"state"`
	StateCode string `db:"state_code" json:"state_code"`
}

// Product is a catalog entry. Names are unique case-insensitively.
type Product struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	HSNCode string `db:"hsn_code" json:"hsn_code"`
}

// BankDetails holds the supplier's bank account details printed on invoices.
type BankDetails struct {
	BankName      string `db:"bank_name" json:"bank_name"`
	AccountNumber string `db:"account_number" json:"account_number"`
	IFSCCode      string `db:"ifsc_code" json:"ifsc_code"`
	Branch        string `db:"branch" json:"branch"`
}

// CompanyProfile is the supplier identity. It is loaded once at session
// start and is read-only thereafter; its State drives tax determination.
type CompanyProfile struct {
	Name      string      `db:"name" json:"name"`
	Address   string      `db:"address" json:"address"`
	GSTIN     string      `db:"gstin" json:"gstin"`
	State     string      `db:"state" json:"state"`
	StateCode string      `db:"state_code" json:"state_code"`
	Phone     string      `db:"phone" json:"phone"`
	Email     string      `db:"email" json:"email"`
	Bank      BankDetails `json:"bank"`
}

// TaxBreakdown is the computed tax and totals for an invoice. Exactly one of
// (CGST, SGST) or IGST is non-zero, never both and never partially.
type TaxBreakdown struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	PackingCharges decimal.Decimal `json:"packing_charges"`
	TotalBeforeTax decimal.Decimal `json:"total_before_tax"`
	TaxType        TaxType         `json:"tax_type"`
	CGST           decimal.Decimal `json:"cgst"`
	SGST           decimal.Decimal `json:"sgst"`
	IGST           decimal.Decimal `json:"igst"`
	TotalTax       decimal.Decimal `json:"total_tax"`
	TotalAfterTax  decimal.Decimal `json:"total_after_tax"`
}

// ExtractedParty is the untrusted party block returned by the extraction
// collaborator. All fields are optional.
type ExtractedParty struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	GSTIN     string `json:"gstin"`
	State     string `json:"state"`
	StateCode string `json:"state_code"`
}

// ExtractedLineItem is one product row as returned by the extractor.
type ExtractedLineItem struct {
	Name     string          `json:"name"`
	HSNCode  string          `json:"hsn_code"`
	Quantity int             `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
}

// ExtractedDocument is the structured result of document extraction. Every
// field may be absent and must be defaulted by the consumer.
type ExtractedDocument struct {
	DocumentType   string               `json:"document_type"`
	PO             string               `json:"po"`
	InvoiceDate    string               `json:"invoice_date"`
	Billing        ExtractedParty       `json:"billing"`
	Shipping       ExtractedParty       `json:"shipping"`
	Products       []ExtractedLineItem  `json:"products"`
	PackingCharges decimal.Decimal      `json:"packing_charges"`
	Confidence     ExtractionConfidence `json:"extraction_confidence"`
	Notes          string               `json:"notes"`
}

// InvoiceRequest is the wire payload for invoice generation. Tax fields are
// intentionally absent: the renderer side recomputes tax from state data so
// tax rules have a single source of truth.
type InvoiceRequest struct {
	InvoiceNo      string          `json:"invoice_no"`
	PO             string          `json:"po"`
	Date           string          `json:"date"` // DD/MM/YYYY
	MBNumber       string          `json:"mb_number"`
	Billing        Party           `json:"billing"`
	Shipping       Party           `json:"shipping"`
	Products       []LineItem      `json:"products"`
	PackingCharges decimal.Decimal `json:"packing_charges"`
}

// Invoice is a fully computed invoice ready for rendering.
type Invoice struct {
	InvoiceRequest
	Totals        TaxBreakdown
	AmountInWords string
	Company       CompanyProfile
}

// InvoiceRecord is one row of the invoice register: a generated invoice
// with its computed totals and archive location.
type InvoiceRecord struct {
	ID            int64           `db:"id" json:"id"`
	InvoiceNo     string          `db:"invoice_no" json:"invoice_no"`
	PO            string          `db:"po" json:"po"`
	InvoiceDate   string          `db:"invoice_date" json:"invoice_date"`
	BillingName   string          `db:"billing_name" json:"billing_name"`
	BillingState  string          `db:"billing_state" json:"billing_state"`
	ShippingName  string          `db:"shipping_name" json:"shipping_name"`
	TaxType       TaxType         `db:"tax_type" json:"tax_type"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
	TotalTax      decimal.Decimal `db:"total_tax" json:"total_tax"`
	TotalAfterTax decimal.Decimal `db:"total_after_tax" json:"total_after_tax"`
	ItemCount     int             `db:"item_count" json:"item_count"`
	ArchiveKey    string          `db:"archive_key" json:"archive_key"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}
