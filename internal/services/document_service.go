package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/spivot-ai/spivot-backend/internal/core/extract"
	"github.com/spivot-ai/spivot-backend/internal/core/jobs"
	"github.com/spivot-ai/spivot-backend/internal/core/metrics"
	"github.com/spivot-ai/spivot-backend/internal/core/storage"
	"github.com/spivot-ai/spivot-backend/internal/models"
	"github.com/spivot-ai/spivot-backend/internal/repositories"
)

var ErrNotReviewable = errors.New("document is not awaiting review")

// Enqueuer is the slice of the job queue the document workflow needs.
type Enqueuer interface {
	Enqueue(ctx context.Context, userID uuid.UUID, jobType string, payload interface{}) (*jobs.Job, error)
}

// DocumentService runs the document review workflow: upload, asynchronous
// extraction, then human accept or reject. Every state change is persisted
// before anything else reacts to it.
type DocumentService struct {
	documentRepo repositories.DocumentRepo
	storage      storage.Provider
	queue        Enqueuer
	extractor    extract.Extractor
}

// NewDocumentService creates a document service.
func NewDocumentService(documentRepo repositories.DocumentRepo, storageProvider storage.Provider, queue Enqueuer, extractor extract.Extractor) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		storage:      storageProvider,
		queue:        queue,
		extractor:    extractor,
	}
}

// Upload stores the file, creates a pending document and enqueues its
// extraction job. The document row exists before the job does, so a crash
// between the two leaves a reviewable artifact, never an orphaned job.
func (s *DocumentService) Upload(ctx context.Context, userID uuid.UUID, fileName string, data []byte, mimeType string) (*models.Document, error) {
	if err := storage.ValidateUpload(int64(len(data)), mimeType); err != nil {
		return nil, err
	}

	stored, err := s.storage.Store(ctx, data, fileName, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	doc := &models.Document{
		UserID:   userID,
		FileName: fileName,
		FileURL:  stored.URL,
		FileKey:  stored.Key,
		MimeType: mimeType,
		Status:   models.DocumentPending,
	}
	if err := s.documentRepo.Create(doc); err != nil {
		// Roll back the stored file so storage does not accumulate orphans
		if delErr := s.storage.Delete(ctx, stored.Key); delErr != nil {
			log.Error().Str("key", stored.Key).Err(delErr).Msg("Failed to clean up stored file")
		}
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	if _, err := s.queue.Enqueue(ctx, userID, jobs.TypeDocumentExtraction, jobs.ExtractionPayload{DocumentID: doc.ID}); err != nil {
		// The document stays pending; a failed enqueue is recoverable by
		// re-uploading, while a missing row is not.
		log.Error().Str("document_id", doc.ID.String()).Err(err).Msg("Failed to enqueue extraction")
		return nil, fmt.Errorf("failed to enqueue extraction: %w", err)
	}

	return doc, nil
}

// Get fetches one document, scoped to its owner.
func (s *DocumentService) Get(userID, docID uuid.UUID) (*models.Document, error) {
	doc, err := s.documentRepo.GetByID(docID)
	if err != nil {
		return nil, err
	}
	if doc.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return doc, nil
}

// List returns the user's documents, newest first.
func (s *DocumentService) List(userID uuid.UUID, limit int) ([]models.Document, error) {
	return s.documentRepo.ListByUser(userID, limit)
}

// Accept verifies a completed document. Accepting an already-verified
// document succeeds without change; accepting anything not completed fails.
func (s *DocumentService) Accept(userID, docID uuid.UUID) (*models.Document, error) {
	doc, err := s.Get(userID, docID)
	if err != nil {
		return nil, err
	}
	if doc.Status != models.DocumentCompleted {
		return nil, ErrNotReviewable
	}
	if doc.Verified {
		return doc, nil
	}

	if err := s.documentRepo.MarkVerified(docID); err != nil {
		return nil, fmt.Errorf("failed to verify document: %w", err)
	}
	return s.documentRepo.GetByID(docID)
}

// Reject discards a completed or failed document: the row and the stored
// file are both removed. In-flight documents cannot be rejected, the worker
// may still be writing to them.
func (s *DocumentService) Reject(ctx context.Context, userID, docID uuid.UUID) error {
	doc, err := s.Get(userID, docID)
	if err != nil {
		return err
	}
	if doc.Status != models.DocumentCompleted && doc.Status != models.DocumentFailed {
		return ErrNotReviewable
	}
	if doc.Verified {
		return fmt.Errorf("verified documents cannot be rejected")
	}

	if err := s.documentRepo.Delete(docID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if doc.FileKey != "" {
		if err := s.storage.Delete(ctx, doc.FileKey); err != nil {
			log.Error().Str("key", doc.FileKey).Err(err).Msg("Failed to delete stored file")
		}
	}
	return nil
}

// ExtractionHandler adapts the document service into a job handler.
type ExtractionHandler struct {
	service *DocumentService
}

// NewExtractionHandler creates the document_extraction job handler.
func NewExtractionHandler(service *DocumentService) *ExtractionHandler {
	return &ExtractionHandler{service: service}
}

func (h *ExtractionHandler) GetType() string {
	return jobs.TypeDocumentExtraction
}

// Handle runs one extraction: claim the pending document, fetch its file,
// extract, and persist the terminal status. The document is marked failed
// before the job error propagates, so the review queue never shows a
// document stuck in processing for a dead job.
func (h *ExtractionHandler) Handle(ctx context.Context, job *jobs.Job) error {
	var payload jobs.ExtractionPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("invalid extraction payload: %w", err)
	}

	if err := h.service.documentRepo.MarkProcessing(payload.DocumentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Document deleted or already claimed; nothing to do
			log.Warn().Str("document_id", payload.DocumentID.String()).Msg("Extraction skipped, document not pending")
			return nil
		}
		return fmt.Errorf("failed to claim document: %w", err)
	}

	doc, err := h.service.documentRepo.GetByID(payload.DocumentID)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	data, err := h.service.storage.Fetch(ctx, doc.FileKey)
	if err != nil {
		return h.fail(doc.ID, fmt.Errorf("failed to fetch file: %w", err))
	}

	result, err := h.service.extractor.Extract(ctx, data, doc.MimeType)
	if err != nil {
		return h.fail(doc.ID, err)
	}

	extracted, err := json.Marshal(result)
	if err != nil {
		return h.fail(doc.ID, fmt.Errorf("failed to serialize extraction: %w", err))
	}

	if err := h.service.documentRepo.MarkCompleted(doc.ID, extracted); err != nil {
		return fmt.Errorf("failed to complete document: %w", err)
	}

	metrics.DocumentExtractions.WithLabelValues("completed").Inc()
	return nil
}

func (h *ExtractionHandler) fail(docID uuid.UUID, cause error) error {
	if err := h.service.documentRepo.MarkFailed(docID, cause.Error()); err != nil {
		log.Error().Str("document_id", docID.String()).Err(err).Msg("Failed to mark document failed")
	}
	metrics.DocumentExtractions.WithLabelValues("failed").Inc()
	return cause
}
