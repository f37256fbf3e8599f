package service

import (
	"context"

	"invoicegen/internal/domain"
	"invoicegen/internal/draft"
)

// ReferenceService serves the read-only reference data behind the form: the
// GST state registry and the supplier profile.
type ReferenceService interface {
	States(ctx context.Context) ([]domain.StateEntry, error)
	Company(ctx context.Context) (*domain.CompanyProfile, error)
}

type referenceService struct {
	session *draft.Session
}

// NewReferenceService creates a new ReferenceService.
func NewReferenceService(session *draft.Session) ReferenceService {
	return &referenceService{session: session}
}

func (s *referenceService) States(_ context.Context) ([]domain.StateEntry, error) {
	return s.session.States().Entries(), nil
}

func (s *referenceService) Company(_ context.Context) (*domain.CompanyProfile, error) {
	c := s.session.Company()
	return &c, nil
}
