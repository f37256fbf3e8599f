package port

import (
	"context"

	"invoicegen/internal/domain"
)

// CatalogStore is the authoritative product catalog. The in-memory session
// copy is a cache refreshed from the store on successful writes.
type CatalogStore interface {
	List(ctx context.Context) ([]domain.Product, error)
	// Create persists a new product and returns the canonical entry with its
	// generated ID. Case-insensitive duplicate names are rejected here too,
	// independent of client-side checks.
	Create(ctx context.Context, name, hsnCode string) (*domain.Product, error)
}
