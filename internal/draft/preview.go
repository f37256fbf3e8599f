package draft

import (
	"context"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

// PreviewState is the extraction-preview lifecycle.
type PreviewState string

const (
	PreviewIdle       PreviewState = "idle"
	PreviewExtracting PreviewState = "extracting"
	PreviewReady      PreviewState = "ready"
	PreviewApplied    PreviewState = "applied"
	PreviewFailed     PreviewState = "failed"
)

// Preview is the editable mirror of the form seeded from an extracted
// document. The user corrects it before applying; its rows are owned by the
// preview and never shared with the primary table.
type Preview struct {
	DocumentType      string                      `json:"document_type"`
	PO                string                      `json:"po"`
	Date              string                      `json:"date"` // YYYY-MM-DD; empty when the extracted date was malformed
	Billing           domain.Party                `json:"billing"`
	Shipping          domain.Party                `json:"shipping"`
	ShipSameAsBilling bool                        `json:"ship_same_as_billing"`
	Rows              []domain.LineItem           `json:"rows"`
	PackingCharges    decimal.Decimal             `json:"packing_charges"`
	Confidence        domain.ExtractionConfidence `json:"confidence"`
	Notes             string                      `json:"notes"`
}

// Reconciler drives the extract-preview-apply flow for one session.
type Reconciler struct {
	session   *Session
	extractor port.DocumentExtractor
	maxBytes  int64
	state     PreviewState
	preview   *Preview
}

// NewReconciler creates a reconciler with the given upload size limit.
func NewReconciler(session *Session, extractor port.DocumentExtractor, maxBytes int64) *Reconciler {
	return &Reconciler{
		session:   session,
		extractor: extractor,
		maxBytes:  maxBytes,
		state:     PreviewIdle,
	}
}

// State returns the current lifecycle state.
func (r *Reconciler) State() PreviewState { return r.state }

// Preview returns the current editable preview, or nil before extraction.
func (r *Reconciler) Preview() *Preview { return r.preview }

// Extract validates the upload locally, calls the extraction collaborator,
// and builds the editable preview. Missing or oversized input is rejected
// without a network call. On collaborator failure no partial preview is
// kept and the reconciler returns to a retryable state.
func (r *Reconciler) Extract(ctx context.Context, fileBytes []byte, contentType string) (*Preview, error) {
	if len(fileBytes) == 0 {
		return nil, domain.ErrNoFileSelected
	}
	if int64(len(fileBytes)) > r.maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	if _, ok := domain.AllowedContentTypes[contentType]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	r.state = PreviewExtracting
	doc, err := r.extractor.Extract(ctx, port.ExtractInput{FileBytes: fileBytes, ContentType: contentType})
	if err != nil {
		log.Printf("draft.Extract: collaborator failed: %v", err)
		r.state = PreviewFailed
		r.preview = nil
		return nil, err
	}

	r.preview = r.buildPreview(doc)
	r.state = PreviewReady
	return r.preview, nil
}

// buildPreview maps an untrusted extracted document onto the form's shape,
// defaulting every missing field.
func (r *Reconciler) buildPreview(doc *domain.ExtractedDocument) *Preview {
	p := &Preview{
		DocumentType:   doc.DocumentType,
		PO:             doc.PO,
		Date:           ToISODate(doc.InvoiceDate),
		Billing:        partyFromExtracted(doc.Billing, r.session),
		Shipping:       partyFromExtracted(doc.Shipping, r.session),
		PackingCharges: doc.PackingCharges,
		Confidence:     doc.Confidence,
		Notes:          doc.Notes,
	}
	if p.Confidence == "" {
		p.Confidence = domain.ConfidenceLow
	}

	// Convenience default only; the user can uncheck before applying.
	p.ShipSameAsBilling = sameParty(doc.Billing, doc.Shipping)

	for _, ep := range doc.Products {
		li := domain.LineItem{
			Name:     strings.TrimSpace(ep.Name),
			HSNCode:  strings.TrimSpace(ep.HSNCode),
			Quantity: ep.Quantity,
			Rate:     ep.Rate,
		}
		if li.HSNCode == "" {
			li.HSNCode = domain.DefaultHSNCode
		}
		if li.Quantity <= 0 {
			li.Quantity = 1
		}
		if li.Rate.IsNegative() {
			li.Rate = decimal.Zero
		}
		li.Recompute()
		p.Rows = append(p.Rows, li)
	}
	return p
}

// Apply replaces the form's party fields and line-item table with the
// corrected preview content. Rows without a name are dropped; when none
// survive, one default row is inserted so the form never has zero rows.
// Totals must be recomputed by the caller's refresh path via Session.Totals.
func (r *Reconciler) Apply(f *Form) domain.TaxBreakdown {
	p := r.preview
	if p == nil {
		return r.session.Totals(f)
	}

	f.PO = p.PO
	f.Date = p.Date
	f.Billing = p.Billing
	f.ShipSameAsBilling = p.ShipSameAsBilling
	if p.ShipSameAsBilling {
		f.SyncShipping()
	} else {
		f.Shipping = p.Shipping
	}

	f.Items.Clear()
	for _, li := range p.Rows {
		if strings.TrimSpace(li.Name) == "" {
			continue
		}
		row := f.Items.AddRow()
		f.Items.SetName(row.ID, li.Name)
		f.Items.SetHSNCode(row.ID, li.HSNCode)
		f.Items.SetQuantity(row.ID, li.Quantity)
		f.Items.SetRate(row.ID, li.Rate)
	}
	if f.Items.Len() == 0 {
		f.Items.AddRow()
	}

	f.PackingCharges = p.PackingCharges

	r.state = PreviewApplied
	return r.session.Totals(f)
}

// Reset discards any preview and returns to idle.
func (r *Reconciler) Reset() {
	r.state = PreviewIdle
	r.preview = nil
}

func partyFromExtracted(ep domain.ExtractedParty, s *Session) domain.Party {
	p := domain.Party{
		Name:      strings.TrimSpace(ep.Name),
		Address:   strings.TrimSpace(ep.Address),
		GSTIN:     strings.TrimSpace(ep.GSTIN),
		State:     strings.TrimSpace(ep.State),
		StateCode: strings.TrimSpace(ep.StateCode),
	}
	if p.StateCode == "" && p.State != "" {
		p.StateCode = s.StateCodeFor(p.State)
	}
	return p
}

// sameParty reports whether billing and shipping are textually identical on
// name, address, and GSTIN.
func sameParty(a, b domain.ExtractedParty) bool {
	eq := func(x, y string) bool { return strings.TrimSpace(x) == strings.TrimSpace(y) }
	return eq(a.Name, b.Name) && eq(a.Address, b.Address) && eq(a.GSTIN, b.GSTIN)
}
