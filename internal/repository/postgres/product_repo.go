package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a new PostgreSQL-backed CatalogStore.
func NewProductRepo(db *sqlx.DB) port.CatalogStore {
	return &productRepo{db: db}
}

func (r *productRepo) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.SelectContext(ctx, &products,
		"SELECT id, name, hsn_code FROM products ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("productRepo.List: %w", err)
	}
	return products, nil
}

func (r *productRepo) Create(ctx context.Context, name, hsnCode string) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	hsnCode = strings.TrimSpace(hsnCode)
	if name == "" {
		return nil, domain.ErrProductNameRequired
	}
	if hsnCode == "" {
		return nil, domain.ErrHSNCodeRequired
	}

	// The unique index on lower(name) is the real guard; this pre-check just
	// turns the common case into a clean domain error.
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM products WHERE lower(name) = lower($1))", name)
	if err != nil {
		return nil, fmt.Errorf("productRepo.Create check: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateProduct
	}

	var p domain.Product
	err = r.db.GetContext(ctx, &p,
		`INSERT INTO products (name, hsn_code)
		 VALUES ($1, $2)
		 RETURNING id, name, hsn_code`, name, hsnCode)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, domain.ErrDuplicateProduct
		}
		return nil, fmt.Errorf("productRepo.Create: %w", err)
	}
	return &p, nil
}
