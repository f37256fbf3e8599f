package handler

import (
	"github.com/gin-gonic/gin"

	"invoicegen/internal/service"
)

// ReferenceHandler serves the static reference data the invoice form needs
// up front: the state registry and the issuing company profile.
type ReferenceHandler struct {
	referenceService service.ReferenceService
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(referenceService service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

// States handles GET /api/v1/states
func (h *ReferenceHandler) States(c *gin.Context) {
	states, err := h.referenceService.States(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, states)
}

// Company handles GET /api/v1/company
func (h *ReferenceHandler) Company(c *gin.Context) {
	company, err := h.referenceService.Company(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, company)
}
