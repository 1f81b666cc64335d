// Package storage persists uploaded document files. Two providers exist:
// local disk for development and S3 for deployments. The extraction worker
// fetches file bytes back through the same provider, so keys must stay
// stable for the lifetime of the document row.
package storage

import (
	"context"
	"fmt"

	"github.com/spivot-ai/spivot-backend/internal/shared/config"
)

// Allowed document MIME types. Anything else is rejected at upload time.
var AllowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/webp":      true,
}

// MaxFileSize caps document uploads at 10MB.
const MaxFileSize = 10 * 1024 * 1024

// StoredFile describes a persisted document file.
type StoredFile struct {
	Key  string `json:"key"`  // provider-specific identifier, stable
	URL  string `json:"url"`  // public URL
	Size int64  `json:"size"` // bytes
}

// Provider is the document file storage contract.
type Provider interface {
	Store(ctx context.Context, data []byte, filename, mimeType string) (*StoredFile, error)
	Fetch(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	GetURL(key string) string
	GetProviderName() string
}

// NewProvider builds the configured storage provider.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.StorageProvider {
	case "local":
		return NewLocalProvider(cfg.UploadDir, cfg.UploadBaseURL)
	case "s3":
		return NewS3Provider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, cfg.AWSRegion, cfg.S3Bucket)
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.StorageProvider)
	}
}

// ValidateUpload checks MIME type and size before a file hits a provider.
func ValidateUpload(size int64, mimeType string) error {
	if !AllowedMimeTypes[mimeType] {
		return fmt.Errorf("file type not allowed: %s", mimeType)
	}
	if size > MaxFileSize {
		return fmt.Errorf("file size %d exceeds maximum of %d bytes", size, MaxFileSize)
	}
	if size == 0 {
		return fmt.Errorf("empty file")
	}
	return nil
}
