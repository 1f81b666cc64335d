// Package extract turns uploaded business documents (invoices, purchase
// orders, bank statements, receipts) into structured records. Recognition
// happens in two stages: a TextRecognizer pulls raw text out of the file,
// then an LLM structures it. Any non-success collapses into a single error
// for the caller; the review workflow maps it to a failed document.
package extract

import "context"

// Document types returned by extraction
const (
	TypeInvoice       = "Invoice"
	TypePurchaseOrder = "Purchase Order"
	TypeBankStatement = "Bank Statement"
	TypeReceipt       = "Receipt"
	TypeOther         = "Other"
)

// LineItem is one row of an extracted document.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// ExtractedDocument is the structured result of a successful extraction.
// Optional fields are pointers: a nil pointer means the field was not found
// in the document, which is not an error.
type ExtractedDocument struct {
	DocumentType string     `json:"document_type"`
	VendorName   *string    `json:"vendor_name"`
	Date         *string    `json:"date"` // YYYY-MM-DD
	TotalAmount  *float64   `json:"total_amount"`
	Tax          *float64   `json:"tax"`
	LineItems    []LineItem `json:"line_items"`
	FullText     string     `json:"full_text"`
}

// Extractor is the document extraction contract consumed by the review
// workflow.
type Extractor interface {
	Extract(ctx context.Context, fileData []byte, mimeType string) (*ExtractedDocument, error)
	GetProviderName() string
}

// TextRecognizer pulls raw text out of a file before structuring.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, fileData []byte, mimeType string) (string, error)
	GetProviderName() string
}

// Service wraps the configured extractor.
type Service struct {
	extractor Extractor
}

// NewService creates an extraction service with the given extractor.
func NewService(extractor Extractor) *Service {
	return &Service{extractor: extractor}
}

// Extract runs the configured extractor.
func (s *Service) Extract(ctx context.Context, fileData []byte, mimeType string) (*ExtractedDocument, error) {
	return s.extractor.Extract(ctx, fileData, mimeType)
}

// GetProviderName returns the name of the current extractor.
func (s *Service) GetProviderName() string {
	return s.extractor.GetProviderName()
}
