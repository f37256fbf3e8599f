package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
)

// MockInvoiceRegister is a mock implementation of port.InvoiceRegister.
type MockInvoiceRegister struct {
	mock.Mock
}

func (m *MockInvoiceRegister) Create(ctx context.Context, rec *domain.InvoiceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockInvoiceRegister) GetByID(ctx context.Context, id int64) (*domain.InvoiceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceRecord), args.Error(1)
}

func (m *MockInvoiceRegister) List(ctx context.Context, offset, limit int) ([]domain.InvoiceRecord, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.InvoiceRecord), args.Int(1), args.Error(2)
}
