package router

import (
	"github.com/gin-gonic/gin"

	"invoicegen/internal/handler"
	"invoicegen/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	corsOrigins []string,
	catalogH *handler.CatalogHandler,
	referenceH *handler.ReferenceHandler,
	extractH *handler.ExtractHandler,
	invoiceH *handler.InvoiceHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Reference data for the invoice form
	v1.GET("/states", referenceH.States)
	v1.GET("/company", referenceH.Company)

	// Product catalog
	v1.GET("/products", catalogH.List)
	v1.POST("/products", catalogH.Create)

	// Document extraction preview
	v1.POST("/extract", extractH.Extract)

	// Invoice generation and register
	v1.POST("/invoices", invoiceH.Generate)
	v1.GET("/invoices", invoiceH.List)
	v1.GET("/invoices/export", invoiceH.Export)
	v1.GET("/invoices/:id/archive", invoiceH.ArchiveLink)
	v1.GET("/invoices/:id/archive/file", invoiceH.ArchiveFile)

	return r
}
