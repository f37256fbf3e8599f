package domain

// TaxType identifies which GST regime applies to an invoice.
type TaxType string

const (
	// TaxTypeSGST means the supplier and customer share a state: CGST + SGST.
	TaxTypeSGST TaxType = "SGST"
	// TaxTypeIGST means an interstate supply: IGST only.
	TaxTypeIGST TaxType = "IGST"
	// TaxTypeNone means the customer state is not yet known; no tax computed.
	TaxTypeNone TaxType = "NONE"
)

// ExtractionConfidence is the extractor's self-reported confidence level.
// Low-confidence results are still shown to the user, never blocked.
type ExtractionConfidence string

const (
	ConfidenceHigh   ExtractionConfidence = "high"
	ConfidenceMedium ExtractionConfidence = "medium"
	ConfidenceLow    ExtractionConfidence = "low"
)

// DocumentType classifies an uploaded source document.
type DocumentType string

const (
	DocumentTypePurchaseOrder DocumentType = "purchase_order"
	DocumentTypeInvoice       DocumentType = "invoice"
	DocumentTypeQuotation     DocumentType = "quotation"
)

// FileType represents the allowed upload types for extraction.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}
