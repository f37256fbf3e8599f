package port

import (
	"context"

	"invoicegen/internal/domain"
)

// InvoiceRenderer produces a printable document from a computed invoice.
type InvoiceRenderer interface {
	Render(ctx context.Context, inv *domain.Invoice) ([]byte, error)
}
