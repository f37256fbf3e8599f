package service

import (
	"context"
	"errors"
	"fmt"

	"invoicegen/internal/domain"
	"invoicegen/internal/draft"
	"invoicegen/internal/extract"
	"invoicegen/internal/port"
)

// ExtractService turns an uploaded invoice or purchase order into an
// editable form preview.
type ExtractService interface {
	Extract(ctx context.Context, fileBytes []byte, contentType string) (*draft.Preview, error)
}

type extractService struct {
	session   *draft.Session
	extractor port.DocumentExtractor
	maxBytes  int64
}

// NewExtractService creates a new ExtractService with the given upload limit.
func NewExtractService(session *draft.Session, extractor port.DocumentExtractor, maxBytes int64) ExtractService {
	return &extractService{
		session:   session,
		extractor: extractor,
		maxBytes:  maxBytes,
	}
}

// Extract validates the upload and builds the defaulted preview. Each call
// uses a fresh reconciler so concurrent requests never share preview state.
func (s *extractService) Extract(ctx context.Context, fileBytes []byte, contentType string) (*draft.Preview, error) {
	r := draft.NewReconciler(s.session, s.extractor, s.maxBytes)
	preview, err := r.Extract(ctx, fileBytes, contentType)
	if err != nil {
		return nil, classifyExtractErr(err)
	}
	return preview, nil
}

// classifyExtractErr folds provider failures under ErrExtractionFailed while
// preserving local validation errors and rate-limit signals as-is.
func classifyExtractErr(err error) error {
	if errors.Is(err, domain.ErrNoFileSelected) ||
		errors.Is(err, domain.ErrFileTooLarge) ||
		errors.Is(err, domain.ErrUnsupportedFileType) {
		return err
	}
	var rateLimited *extract.RateLimitError
	if errors.As(err, &rateLimited) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
}
