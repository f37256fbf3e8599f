package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicegen/internal/service"
)

// CatalogHandler handles product catalog endpoints.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List handles GET /api/v1/products
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.catalogService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, products)
}

// Create handles POST /api/v1/products
func (h *CatalogHandler) Create(c *gin.Context) {
	var input service.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	product, err := h.catalogService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, product)
}
