package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecognizer struct {
	text string
	err  error
}

func (f *fakeRecognizer) RecognizeText(_ context.Context, _ []byte, _ string) (string, error) {
	return f.text, f.err
}

func (f *fakeRecognizer) GetProviderName() string { return "fake-ocr" }

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) GenerateResponse(_ context.Context, _, _ string) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) GetProviderName() string { return "fake-llm" }

func TestExtract_FenceWrappedJSON(t *testing.T) {
	extractor := NewLLMExtractor(
		&fakeRecognizer{text: "INVOICE\nAcme Corp\nTotal: 1250.00"},
		&fakeLLM{response: "```json\n{\"document_type\": \"Invoice\", \"vendor_name\": \"Acme Corp\", \"date\": \"2025-03-14\", \"total_amount\": 1250.00, \"tax\": 112.50, \"line_items\": [{\"description\": \"Widgets\", \"quantity\": 50, \"unit_price\": 25, \"total\": 1250}]}\n```"},
	)

	doc, err := extractor.Extract(context.Background(), []byte("pdf-bytes"), "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, TypeInvoice, doc.DocumentType)
	require.NotNil(t, doc.VendorName)
	assert.Equal(t, "Acme Corp", *doc.VendorName)
	require.NotNil(t, doc.TotalAmount)
	assert.Equal(t, 1250.00, *doc.TotalAmount)
	require.Len(t, doc.LineItems, 1)
	assert.Equal(t, "Widgets", doc.LineItems[0].Description)
	assert.Equal(t, "INVOICE\nAcme Corp\nTotal: 1250.00", doc.FullText)
}

func TestExtract_PartialFieldsAreNotAnError(t *testing.T) {
	extractor := NewLLMExtractor(
		&fakeRecognizer{text: "blurry receipt"},
		&fakeLLM{response: `{"document_type": "Receipt", "vendor_name": null, "date": null, "total_amount": 42.5, "tax": null, "line_items": []}`},
	)

	doc, err := extractor.Extract(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, TypeReceipt, doc.DocumentType)
	assert.Nil(t, doc.VendorName)
	assert.Nil(t, doc.Date)
	assert.Nil(t, doc.Tax)
	require.NotNil(t, doc.TotalAmount)
	assert.Equal(t, 42.5, *doc.TotalAmount)
	assert.Empty(t, doc.LineItems)
}

func TestExtract_UnknownDocumentTypeFallsBackToOther(t *testing.T) {
	extractor := NewLLMExtractor(
		&fakeRecognizer{text: "something"},
		&fakeLLM{response: `{"document_type": "Shipping Manifest", "line_items": null}`},
	)

	doc, err := extractor.Extract(context.Background(), []byte("img"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, TypeOther, doc.DocumentType)
	assert.NotNil(t, doc.LineItems)
}

func TestExtract_InvalidJSON(t *testing.T) {
	extractor := NewLLMExtractor(
		&fakeRecognizer{text: "something"},
		&fakeLLM{response: "Sure! Here is the extracted data: vendor is Acme"},
	)

	_, err := extractor.Extract(context.Background(), []byte("img"), "image/jpeg")
	assert.Error(t, err)
}

func TestExtract_RecognizerFailurePropagates(t *testing.T) {
	extractor := NewLLMExtractor(
		&fakeRecognizer{err: errors.New("upstream OCR timeout")},
		&fakeLLM{response: `{}`},
	)

	_, err := extractor.Extract(context.Background(), []byte("img"), "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text recognition failed")
}

func TestExtract_LLMFailurePropagates(t *testing.T) {
	extractor := NewLLMExtractor(
		&fakeRecognizer{text: "text"},
		&fakeLLM{err: errors.New("rate limited")},
	)

	_, err := extractor.Extract(context.Background(), []byte("img"), "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM extraction failed")
}
