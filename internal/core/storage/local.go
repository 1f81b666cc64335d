package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalProvider stores document files on the local filesystem under
// basePath/documents/.
type LocalProvider struct {
	basePath string
	baseURL  string
}

// NewLocalProvider creates a local filesystem storage provider, creating the
// base directory if needed.
func NewLocalProvider(basePath, baseURL string) (*LocalProvider, error) {
	if err := os.MkdirAll(filepath.Join(basePath, "documents"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalProvider{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (p *LocalProvider) GetProviderName() string {
	return "Local Storage"
}

func (p *LocalProvider) Store(_ context.Context, data []byte, filename, mimeType string) (*StoredFile, error) {
	if err := ValidateUpload(int64(len(data)), mimeType); err != nil {
		return nil, err
	}

	key := p.buildKey(filename)
	path := filepath.Join(p.basePath, key)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &StoredFile{
		Key:  key,
		URL:  p.GetURL(key),
		Size: int64(len(data)),
	}, nil
}

func (p *LocalProvider) Fetch(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(p.basePath, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", key)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (p *LocalProvider) Delete(_ context.Context, key string) error {
	if err := os.Remove(filepath.Join(p.basePath, key)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", key)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (p *LocalProvider) GetURL(key string) string {
	return p.baseURL + "/uploads/" + key
}

// buildKey derives a collision-free key from the original filename.
func (p *LocalProvider) buildKey(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	uniqueID := uuid.New().String()[:8]
	return fmt.Sprintf("documents/%s_%d_%s%s", base, time.Now().Unix(), uniqueID, ext)
}
