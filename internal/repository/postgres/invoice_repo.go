package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRegister.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRegister {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, rec *domain.InvoiceRecord) error {
	rec.CreatedAt = time.Now().UTC()

	query := `INSERT INTO invoices
		(invoice_no, po, invoice_date, billing_name, billing_state, shipping_name,
		 tax_type, subtotal, total_tax, total_after_tax, item_count, archive_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	err := r.db.GetContext(ctx, &rec.ID, query,
		rec.InvoiceNo, rec.PO, rec.InvoiceDate, rec.BillingName, rec.BillingState,
		rec.ShippingName, rec.TaxType, rec.Subtotal, rec.TotalTax, rec.TotalAfterTax,
		rec.ItemCount, rec.ArchiveKey, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id int64) (*domain.InvoiceRecord, error) {
	var rec domain.InvoiceRecord
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM invoices WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &rec, nil
}

func (r *invoiceRepo) List(ctx context.Context, offset, limit int) ([]domain.InvoiceRecord, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices")
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	var records []domain.InvoiceRecord
	err = r.db.SelectContext(ctx, &records,
		"SELECT * FROM invoices ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return records, total, nil
}
