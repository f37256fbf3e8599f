package service

import (
	"context"

	"invoicegen/internal/domain"
	"invoicegen/internal/draft"
)

// CreateProductInput is the DTO for adding a catalog product.
type CreateProductInput struct {
	Name    string `json:"name" binding:"required"`
	HSNCode string `json:"hsn_code" binding:"required"`
}

// CatalogService defines the product catalog contract.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
}

type catalogService struct {
	session *draft.Session
}

// NewCatalogService creates a new CatalogService backed by the shared form
// session, so API writes keep the session's catalog cache current.
func NewCatalogService(session *draft.Session) CatalogService {
	return &catalogService{session: session}
}

func (s *catalogService) List(_ context.Context) ([]domain.Product, error) {
	return s.session.Products(), nil
}

func (s *catalogService) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	return s.session.ProposeSaveToCatalog(ctx, input.Name, input.HSNCode)
}
