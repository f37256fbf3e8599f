package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"strings"

	"invoicegen/internal/domain"
	"invoicegen/internal/draft"
	"invoicegen/internal/gst"
	"invoicegen/internal/port"
	"invoicegen/internal/xlsxexport"
)

// GeneratedInvoice is the result of invoice generation: the rendered PDF,
// its download filename and the register record.
type GeneratedInvoice struct {
	PDF      []byte
	Filename string
	Record   *domain.InvoiceRecord
}

// InvoiceService generates invoices and serves the register of past ones.
type InvoiceService interface {
	Generate(ctx context.Context, req *domain.InvoiceRequest) (*GeneratedInvoice, error)
	List(ctx context.Context, offset, limit int) ([]domain.InvoiceRecord, int, error)
	ExportXLSX(ctx context.Context) ([]byte, string, error)
	ArchiveURL(ctx context.Context, id int64) (string, error)
	ArchiveDocument(ctx context.Context, id int64) ([]byte, string, error)
}

type invoiceService struct {
	session  *draft.Session
	calc     *gst.Calculator
	renderer port.InvoiceRenderer
	register port.InvoiceRegister
	archive  port.ObjectStorage // nil when archiving is disabled
	bucket   string
	presign  int64 // presigned URL lifetime in seconds
}

// NewInvoiceService creates a new InvoiceService. Pass a nil archive to skip
// uploading rendered invoices.
func NewInvoiceService(
	session *draft.Session,
	calc *gst.Calculator,
	renderer port.InvoiceRenderer,
	register port.InvoiceRegister,
	archive port.ObjectStorage,
	bucket string,
	presignExpiry int64,
) InvoiceService {
	return &invoiceService{
		session:  session,
		calc:     calc,
		renderer: renderer,
		register: register,
		archive:  archive,
		bucket:   bucket,
		presign:  presignExpiry,
	}
}

// Generate validates the request, recomputes all amounts server-side, renders
// the PDF and records the invoice in the register. Caller-supplied amounts
// and any caller-supplied tax fields are ignored.
func (s *invoiceService) Generate(ctx context.Context, req *domain.InvoiceRequest) (*GeneratedInvoice, error) {
	if strings.TrimSpace(req.InvoiceNo) == "" || strings.TrimSpace(req.Date) == "" {
		return nil, domain.ErrMissingRequiredField
	}

	items := make([]domain.LineItem, 0, len(req.Products))
	for _, li := range req.Products {
		if !li.Valid() {
			continue
		}
		li.Recompute()
		items = append(items, li)
	}
	if len(items) == 0 {
		return nil, domain.ErrNoValidProducts
	}

	company := s.session.Company()
	totals := s.calc.ComputeTotals(items, req.PackingCharges, company.State, req.Billing.State)

	inv := &domain.Invoice{
		InvoiceRequest: *req,
		Totals:         totals,
		AmountInWords:  gst.AmountInWords(totals.TotalAfterTax),
		Company:        company,
	}
	inv.Products = items

	pdf, err := s.renderer.Render(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("rendering invoice %s: %w", req.InvoiceNo, err)
	}

	filename := fmt.Sprintf("Invoice_%s.pdf", xlsxexport.SanitizeFilename(req.InvoiceNo))

	archiveKey := ""
	if s.archive != nil {
		archiveKey = fmt.Sprintf("invoices/%s", filename)
		_, err := s.archive.Upload(ctx, port.UploadInput{
			Bucket:      s.bucket,
			Key:         archiveKey,
			Body:        bytes.NewReader(pdf),
			ContentType: "application/pdf",
			Size:        int64(len(pdf)),
		})
		if err != nil {
			// The user still gets their invoice when the archive is down.
			log.Printf("invoiceService.Generate: archiving %s failed: %v", archiveKey, err)
			archiveKey = ""
		}
	}

	rec := &domain.InvoiceRecord{
		InvoiceNo:     req.InvoiceNo,
		PO:            req.PO,
		InvoiceDate:   req.Date,
		BillingName:   req.Billing.Name,
		BillingState:  req.Billing.State,
		ShippingName:  req.Shipping.Name,
		TaxType:       totals.TaxType,
		Subtotal:      totals.Subtotal,
		TotalTax:      totals.TotalTax,
		TotalAfterTax: totals.TotalAfterTax,
		ItemCount:     len(items),
		ArchiveKey:    archiveKey,
	}
	if err := s.register.Create(ctx, rec); err != nil {
		log.Printf("invoiceService.Generate: recording %s in register failed: %v", req.InvoiceNo, err)
	}

	return &GeneratedInvoice{
		PDF:      pdf,
		Filename: filename,
		Record:   rec,
	}, nil
}

func (s *invoiceService) List(ctx context.Context, offset, limit int) ([]domain.InvoiceRecord, int, error) {
	return s.register.List(ctx, offset, limit)
}

// ExportXLSX writes the full register to an Excel workbook, paging through
// the store in batches.
func (s *invoiceService) ExportXLSX(ctx context.Context) ([]byte, string, error) {
	w, err := xlsxexport.NewWriter()
	if err != nil {
		return nil, "", fmt.Errorf("creating register export: %w", err)
	}

	const batchSize = 500
	for offset := 0; ; offset += batchSize {
		records, total, err := s.register.List(ctx, offset, batchSize)
		if err != nil {
			return nil, "", fmt.Errorf("listing register for export: %w", err)
		}
		if err := w.WriteRecords(records); err != nil {
			return nil, "", fmt.Errorf("writing register export: %w", err)
		}
		if offset+len(records) >= total || len(records) == 0 {
			break
		}
	}

	data, err := w.Bytes()
	if err != nil {
		return nil, "", err
	}
	return data, xlsxexport.BuildFilename("invoice_register"), nil
}

// ArchiveURL returns a short-lived download link for an archived invoice
// PDF. Invoices generated while archiving was disabled have no link.
func (s *invoiceService) ArchiveURL(ctx context.Context, id int64) (string, error) {
	rec, err := s.register.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if s.archive == nil || rec.ArchiveKey == "" {
		return "", domain.ErrNotFound
	}
	url, err := s.archive.GetPresignedURL(ctx, s.bucket, rec.ArchiveKey, s.presign)
	if err != nil {
		return "", fmt.Errorf("presigning archive link for invoice %d: %w", id, err)
	}
	return url, nil
}

// ArchiveDocument fetches an archived invoice PDF and its filename. Serves
// clients that cannot follow presigned links to the bucket directly.
func (s *invoiceService) ArchiveDocument(ctx context.Context, id int64) ([]byte, string, error) {
	rec, err := s.register.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if s.archive == nil || rec.ArchiveKey == "" {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := s.archive.Download(ctx, s.bucket, rec.ArchiveKey)
	if err != nil {
		return nil, "", fmt.Errorf("fetching archived invoice %d: %w", id, err)
	}
	return pdf, path.Base(rec.ArchiveKey), nil
}
