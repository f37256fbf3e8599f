package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"invoicegen/internal/domain"
	"invoicegen/internal/service"
)

// InvoiceHandler handles invoice generation and register endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Generate handles POST /api/v1/invoices. The response body is the rendered
// PDF, served as an attachment.
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req domain.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	gen, err := h.invoiceService.Generate(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", gen.Filename))
	c.Data(http.StatusOK, "application/pdf", gen.PDF)
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	records, total, err := h.invoiceService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, records, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ArchiveLink handles GET /api/v1/invoices/:id/archive. It returns a
// short-lived presigned URL for the archived PDF.
func (h *InvoiceHandler) ArchiveLink(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	url, err := h.invoiceService.ArchiveURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// ArchiveFile handles GET /api/v1/invoices/:id/archive/file. It serves the
// archived PDF through the API for clients that cannot reach the bucket.
func (h *InvoiceHandler) ArchiveFile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	pdf, filename, err := h.invoiceService.ArchiveDocument(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Export handles GET /api/v1/invoices/export. It streams the full invoice
// register as an xlsx workbook.
func (h *InvoiceHandler) Export(c *gin.Context) {
	data, filename, err := h.invoiceService.ExportXLSX(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
