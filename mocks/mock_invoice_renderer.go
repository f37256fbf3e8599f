package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
)

// MockInvoiceRenderer is a mock implementation of port.InvoiceRenderer.
type MockInvoiceRenderer struct {
	mock.Mock
}

func (m *MockInvoiceRenderer) Render(ctx context.Context, inv *domain.Invoice) ([]byte, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
