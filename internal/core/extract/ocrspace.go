package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const ocrSpaceEndpoint = "https://api.ocr.space/parse/image"

// OCRSpaceRecognizer extracts raw text using the OCR.space HTTP API.
// Handles images and PDFs.
type OCRSpaceRecognizer struct {
	apiKey     string
	httpClient *http.Client
}

// NewOCRSpaceRecognizer creates an OCR.space text recognizer.
func NewOCRSpaceRecognizer(apiKey string) *OCRSpaceRecognizer {
	return &OCRSpaceRecognizer{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (r *OCRSpaceRecognizer) GetProviderName() string {
	return "OCR.space"
}

type ocrSpaceResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
	OCRExitCode           int             `json:"OCRExitCode"`
}

// RecognizeText sends the file to OCR.space and returns the parsed text.
func (r *OCRSpaceRecognizer) RecognizeText(ctx context.Context, fileData []byte, mimeType string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("apikey", r.apiKey); err != nil {
		return "", fmt.Errorf("failed to write apikey field: %w", err)
	}
	if err := writer.WriteField("language", "eng"); err != nil {
		return "", fmt.Errorf("failed to write language field: %w", err)
	}
	// Engine 2 handles rotated scans and low-contrast receipts better
	if err := writer.WriteField("OCREngine", "2"); err != nil {
		return "", fmt.Errorf("failed to write engine field: %w", err)
	}
	if mimeType == "application/pdf" {
		if err := writer.WriteField("filetype", "PDF"); err != nil {
			return "", fmt.Errorf("failed to write filetype field: %w", err)
		}
	}

	part, err := writer.CreateFormFile("file", fileNameFor(mimeType))
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(fileData); err != nil {
		return "", fmt.Errorf("failed to write file data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ocrSpaceEndpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create OCR request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read OCR response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OCR API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result ocrSpaceResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse OCR response: %w", err)
	}

	if result.IsErroredOnProcessing || result.OCRExitCode != 1 {
		return "", fmt.Errorf("OCR processing failed: %s", string(result.ErrorMessage))
	}
	if len(result.ParsedResults) == 0 {
		return "", fmt.Errorf("OCR returned no parsed results")
	}

	var sb strings.Builder
	for _, pr := range result.ParsedResults {
		sb.WriteString(pr.ParsedText)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("OCR returned empty text")
	}
	return text, nil
}

func fileNameFor(mimeType string) string {
	switch mimeType {
	case "application/pdf":
		return "document.pdf"
	case "image/png":
		return "document.png"
	default:
		return "document.jpg"
	}
}
