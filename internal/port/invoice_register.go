package port

import (
	"context"

	"invoicegen/internal/domain"
)

// InvoiceRegister records generated invoices for listing and export.
type InvoiceRegister interface {
	Create(ctx context.Context, rec *domain.InvoiceRecord) error
	GetByID(ctx context.Context, id int64) (*domain.InvoiceRecord, error)
	List(ctx context.Context, offset, limit int) ([]domain.InvoiceRecord, int, error)
}
