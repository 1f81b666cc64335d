package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProvider_StoreFetchDelete(t *testing.T) {
	provider, err := NewLocalProvider(t.TempDir(), "http://localhost:8080/")
	require.NoError(t, err)

	stored, err := provider.Store(context.Background(), []byte("%PDF-1.4 fake"), "invoice.pdf", "application/pdf")
	require.NoError(t, err)

	assert.Contains(t, stored.Key, "documents/invoice_")
	assert.Contains(t, stored.URL, "http://localhost:8080/uploads/documents/")
	assert.Equal(t, int64(13), stored.Size)

	data, err := provider.Fetch(context.Background(), stored.Key)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)

	require.NoError(t, provider.Delete(context.Background(), stored.Key))

	_, err = provider.Fetch(context.Background(), stored.Key)
	assert.Error(t, err)
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		mimeType string
		wantErr  bool
	}{
		{"pdf within limit", 1024, "application/pdf", false},
		{"png within limit", 2048, "image/png", false},
		{"disallowed type", 1024, "application/zip", true},
		{"oversized file", MaxFileSize + 1, "application/pdf", true},
		{"empty file", 0, "application/pdf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.size, tt.mimeType)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
