package port

import (
	"context"

	"invoicegen/internal/domain"
)

// ExtractInput carries an uploaded document for field extraction.
type ExtractInput struct {
	FileBytes   []byte
	ContentType string
}

// DocumentExtractor abstracts vision-model extraction of invoice/PO fields
// from an uploaded document.
type DocumentExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*domain.ExtractedDocument, error)
}
