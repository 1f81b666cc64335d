package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DocumentStatus tracks a document through the extraction lifecycle.
// Status moves exactly once from processing to a terminal completed or failed.
type DocumentStatus string

const (
	DocumentPending    DocumentStatus = "pending"
	DocumentProcessing DocumentStatus = "processing"
	DocumentCompleted  DocumentStatus = "completed"
	DocumentFailed     DocumentStatus = "failed"
)

// Document represents an uploaded business document (invoice, PO, bank
// statement, receipt) and the structured data extracted from it.
//
// Invariants: Verified implies status completed; ExtractedData is present
// iff status is completed; a failed document carries ErrorMessage instead.
type Document struct {
	ID       uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_documents_user" json:"user_id"`
	FileName string         `gorm:"type:varchar(255);not null" json:"file_name"`
	FileURL  string         `gorm:"type:text;not null" json:"file_url"`
	FileKey  string         `gorm:"type:text" json:"-"` // storage provider identifier
	MimeType string         `gorm:"type:varchar(100);not null" json:"mime_type"`
	Status   DocumentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	ExtractedData datatypes.JSON `gorm:"type:jsonb" json:"extracted_data,omitempty"`
	ErrorMessage  string         `gorm:"type:text" json:"error_message,omitempty"`
	Verified      bool           `gorm:"type:boolean;not null;default:false" json:"verified"`

	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`

	// Relationship
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (Document) TableName() string {
	return "documents"
}

// BeforeCreate sets UUID before creating
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Reviewable reports whether the document is awaiting human review
func (d *Document) Reviewable() bool {
	return d.Status == DocumentCompleted && !d.Verified
}
