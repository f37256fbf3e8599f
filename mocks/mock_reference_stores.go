package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
)

// MockStateStore is a mock implementation of port.StateStore.
type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) LoadAll(ctx context.Context) ([]domain.StateEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StateEntry), args.Error(1)
}

// MockCompanyStore is a mock implementation of port.CompanyStore.
type MockCompanyStore struct {
	mock.Mock
}

func (m *MockCompanyStore) Get(ctx context.Context) (*domain.CompanyProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}
