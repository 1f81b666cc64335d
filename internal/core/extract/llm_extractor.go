package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/spivot-ai/spivot-backend/internal/core/llm"
)

const extractionSystemPrompt = `You are a document extraction engine for small-business paperwork.
You receive the raw OCR text of a single document and return structured JSON.

Return ONLY a JSON object with exactly these fields:
{
  "document_type": "Invoice" | "Purchase Order" | "Bank Statement" | "Receipt" | "Other",
  "vendor_name": string or null,
  "date": "YYYY-MM-DD" or null,
  "total_amount": number or null,
  "tax": number or null,
  "line_items": [
    {"description": string, "quantity": number, "unit_price": number, "total": number}
  ]
}

Rules:
- If a field is not present in the document, use null. Never invent values.
- Amounts are plain numbers without currency symbols or thousands separators.
- line_items may be an empty array when the document has no itemized rows.
- Do not wrap the JSON in markdown or add commentary.`

// LLMExtractor runs two-stage extraction: OCR text recognition followed by
// LLM structuring.
type LLMExtractor struct {
	recognizer TextRecognizer
	provider   llm.Provider
}

// NewLLMExtractor composes a text recognizer and an LLM provider into a
// document extractor.
func NewLLMExtractor(recognizer TextRecognizer, provider llm.Provider) *LLMExtractor {
	return &LLMExtractor{
		recognizer: recognizer,
		provider:   provider,
	}
}

func (e *LLMExtractor) GetProviderName() string {
	return fmt.Sprintf("%s+%s", e.recognizer.GetProviderName(), e.provider.GetProviderName())
}

// Extract recognizes text in the file and structures it with the LLM.
func (e *LLMExtractor) Extract(ctx context.Context, fileData []byte, mimeType string) (*ExtractedDocument, error) {
	text, err := e.recognizer.RecognizeText(ctx, fileData, mimeType)
	if err != nil {
		return nil, fmt.Errorf("text recognition failed: %w", err)
	}

	response, err := e.provider.GenerateResponse(ctx, extractionSystemPrompt, text)
	if err != nil {
		return nil, fmt.Errorf("LLM extraction failed: %w", err)
	}

	doc, err := parseExtraction(response)
	if err != nil {
		log.Warn().
			Str("provider", e.provider.GetProviderName()).
			Err(err).
			Msg("Failed to parse extraction response")
		return nil, err
	}

	doc.FullText = text
	return doc, nil
}

// parseExtraction decodes the LLM response into an ExtractedDocument. Models
// sometimes wrap JSON in markdown fences despite instructions, so those are
// stripped first.
func parseExtraction(response string) (*ExtractedDocument, error) {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var doc ExtractedDocument
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, fmt.Errorf("invalid extraction JSON: %w", err)
	}

	if !validDocumentType(doc.DocumentType) {
		doc.DocumentType = TypeOther
	}
	if doc.LineItems == nil {
		doc.LineItems = []LineItem{}
	}

	return &doc, nil
}

func validDocumentType(t string) bool {
	switch t {
	case TypeInvoice, TypePurchaseOrder, TypeBankStatement, TypeReceipt, TypeOther:
		return true
	}
	return false
}
