package port

import (
	"context"

	"invoicegen/internal/domain"
)

// StateStore provides the GST state registry entries.
type StateStore interface {
	LoadAll(ctx context.Context) ([]domain.StateEntry, error)
}

// CompanyStore provides the supplier company profile.
type CompanyStore interface {
	Get(ctx context.Context) (*domain.CompanyProfile, error)
}
