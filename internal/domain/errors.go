package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrProductNameRequired  = errors.New("product name is required")
	ErrHSNCodeRequired      = errors.New("HSN code is required")
	ErrDuplicateProduct     = errors.New("a product with this name already exists")
	ErrNoValidProducts      = errors.New("no valid product rows to submit")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidDate          = errors.New("date is not a valid calendar date")
	ErrNoFileSelected       = errors.New("no file selected")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrExtractionFailed     = errors.New("document extraction failed")
	ErrRenderFailed         = errors.New("invoice rendering failed")
	ErrRowNotFound          = errors.New("line item row not found")
	ErrUnknownState         = errors.New("state is not in the registry")
)
