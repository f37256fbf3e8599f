package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"invoicegen/internal/config"
	"invoicegen/internal/draft"
	"invoicegen/internal/extract/openai"
	"invoicegen/internal/gst"
	"invoicegen/internal/handler"
	"invoicegen/internal/port"
	"invoicegen/internal/render"
	"invoicegen/internal/repository/postgres"
	"invoicegen/internal/router"
	"invoicegen/internal/service"
	s3storage "invoicegen/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Missing .env is fine; container deployments set real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	stateRepo := postgres.NewStateRepo(db)
	productRepo := postgres.NewProductRepo(db)
	companyRepo := postgres.NewCompanyRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)

	// Tax rates are config strings so a rate change never needs a rebuild.
	rates, err := gst.ParseRates(cfg.GST.CGSTRate, cfg.GST.SGSTRate, cfg.GST.IGSTRate)
	if err != nil {
		return fmt.Errorf("failed to parse GST rates: %w", err)
	}
	calc := gst.NewCalculator(rates)

	// The session loads states, catalog and company once at startup; every
	// request after that works off the in-memory copy.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	session, err := draft.NewSession(ctx, stateRepo, productRepo, companyRepo, calc)
	if err != nil {
		return fmt.Errorf("failed to load session data: %w", err)
	}

	// Optional rendered-invoice archive
	var archive port.ObjectStorage
	if cfg.S3.Enabled {
		archive, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	} else {
		log.Println("invoice archiving disabled; rendered PDFs will not be uploaded")
	}

	if cfg.Extract.APIKey == "" {
		log.Println("warning: no extraction API key configured; /extract will fail upstream")
	}
	company := session.Company()
	extractor := openai.NewExtractor(&cfg.Extract, &company, session.States())

	renderer := render.NewPDFRenderer(rates)

	// Initialize services
	catalogSvc := service.NewCatalogService(session)
	referenceSvc := service.NewReferenceService(session)
	extractSvc := service.NewExtractService(session, extractor, cfg.Upload.MaxFileSizeBytes())
	invoiceSvc := service.NewInvoiceService(session, calc, renderer, invoiceRepo, archive, cfg.S3.Bucket, cfg.S3.PresignExpiry)

	// Initialize handlers
	catalogH := handler.NewCatalogHandler(catalogSvc)
	referenceH := handler.NewReferenceHandler(referenceSvc)
	extractH := handler.NewExtractHandler(extractSvc, cfg.Upload.MaxFileSizeBytes())
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(cfg.CORS.AllowedOrigins, catalogH, referenceH, extractH, invoiceH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
