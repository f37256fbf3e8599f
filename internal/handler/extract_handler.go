package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicegen/internal/domain"
	"invoicegen/internal/service"
)

// ExtractHandler handles document extraction endpoints.
type ExtractHandler struct {
	extractService service.ExtractService
	maxBytes       int64
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractService service.ExtractService, maxBytes int64) *ExtractHandler {
	return &ExtractHandler{extractService: extractService, maxBytes: maxBytes}
}

// Extract handles POST /api/v1/extract. It accepts a multipart upload of a
// purchase order or invoice (pdf, jpg, png) and returns an editable preview.
func (h *ExtractHandler) Extract(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "NO_FILE_SELECTED", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	// Reject oversized uploads from the multipart header before buffering
	// the body. The preview builder re-checks against the actual bytes.
	if header.Size > h.maxBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	fileBytes, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", fmt.Sprintf("reading upload: %v", err))
		return
	}

	// Magic-byte detection rather than trusting the client's declared type.
	contentType := http.DetectContentType(fileBytes)

	preview, err := h.extractService.Extract(c.Request.Context(), fileBytes, contentType)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, preview)
}
