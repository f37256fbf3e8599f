package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
)

// MockCatalogStore is a mock implementation of port.CatalogStore.
type MockCatalogStore struct {
	mock.Mock
}

func (m *MockCatalogStore) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalogStore) Create(ctx context.Context, name, hsnCode string) (*domain.Product, error) {
	args := m.Called(ctx, name, hsnCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
