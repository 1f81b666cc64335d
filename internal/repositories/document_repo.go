package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/spivot-ai/spivot-backend/internal/models"
)

// DocumentRepo interface defines document persistence operations.
// Status transitions are written through dedicated methods so the review
// workflow's invariants hold at the storage layer.
type DocumentRepo interface {
	Create(doc *models.Document) error
	GetByID(id uuid.UUID) (*models.Document, error)
	ListByUser(userID uuid.UUID, limit int) ([]models.Document, error)
	MarkProcessing(id uuid.UUID) error
	MarkCompleted(id uuid.UUID, extracted datatypes.JSON) error
	MarkFailed(id uuid.UUID, message string) error
	MarkVerified(id uuid.UUID) error
	Delete(id uuid.UUID) error
}

type documentRepo struct {
	db *gorm.DB
}

// NewDocumentRepo creates a new document repository
func NewDocumentRepo(db *gorm.DB) DocumentRepo {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

func (r *documentRepo) GetByID(id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	if err := r.db.First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) ListByUser(userID uuid.UUID, limit int) ([]models.Document, error) {
	var docs []models.Document
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// MarkProcessing claims a pending document for extraction.
func (r *documentRepo) MarkProcessing(id uuid.UUID) error {
	return r.transition(id, models.DocumentPending, map[string]interface{}{
		"status": models.DocumentProcessing,
	})
}

// MarkCompleted transitions a processing document to completed with its
// extracted payload. Only a processing document may complete.
func (r *documentRepo) MarkCompleted(id uuid.UUID, extracted datatypes.JSON) error {
	now := time.Now()
	return r.transition(id, models.DocumentProcessing, map[string]interface{}{
		"status":         models.DocumentCompleted,
		"extracted_data": extracted,
		"error_message":  "",
		"processed_at":   now,
	})
}

// MarkFailed transitions a processing document to failed. Extracted data is
// cleared: a failed document never carries a payload.
func (r *documentRepo) MarkFailed(id uuid.UUID, message string) error {
	now := time.Now()
	return r.transition(id, models.DocumentProcessing, map[string]interface{}{
		"status":         models.DocumentFailed,
		"extracted_data": nil,
		"error_message":  message,
		"processed_at":   now,
	})
}

// MarkVerified flips the verified flag on a completed document.
func (r *documentRepo) MarkVerified(id uuid.UUID) error {
	return r.transition(id, models.DocumentCompleted, map[string]interface{}{
		"verified": true,
	})
}

func (r *documentRepo) transition(id uuid.UUID, from models.DocumentStatus, updates map[string]interface{}) error {
	res := r.db.Model(&models.Document{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *documentRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Document{}, "id = ?", id).Error
}
