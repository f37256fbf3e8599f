package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
	"invoicegen/internal/draft"
	"invoicegen/internal/service"
)

// MockCatalogService is a mock implementation of service.CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalogService) Create(ctx context.Context, input service.CreateProductInput) (*domain.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// MockReferenceService is a mock implementation of service.ReferenceService.
type MockReferenceService struct {
	mock.Mock
}

func (m *MockReferenceService) States(ctx context.Context) ([]domain.StateEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StateEntry), args.Error(1)
}

func (m *MockReferenceService) Company(ctx context.Context) (*domain.CompanyProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}

// MockExtractService is a mock implementation of service.ExtractService.
type MockExtractService struct {
	mock.Mock
}

func (m *MockExtractService) Extract(ctx context.Context, fileBytes []byte, contentType string) (*draft.Preview, error) {
	args := m.Called(ctx, fileBytes, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*draft.Preview), args.Error(1)
}

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Generate(ctx context.Context, req *domain.InvoiceRequest) (*service.GeneratedInvoice, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GeneratedInvoice), args.Error(1)
}

func (m *MockInvoiceService) List(ctx context.Context, offset, limit int) ([]domain.InvoiceRecord, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.InvoiceRecord), args.Int(1), args.Error(2)
}

func (m *MockInvoiceService) ArchiveURL(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceService) ArchiveDocument(ctx context.Context, id int64) ([]byte, string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockInvoiceService) ExportXLSX(ctx context.Context) ([]byte, string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
