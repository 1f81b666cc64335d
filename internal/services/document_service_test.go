package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spivot-ai/spivot-backend/internal/core/extract"
	"github.com/spivot-ai/spivot-backend/internal/core/jobs"
	"github.com/spivot-ai/spivot-backend/internal/models"
)

func newDocumentFixture(extractor extract.Extractor) (*DocumentService, *fakeDocumentRepo, *fakeStorage, *fakeEnqueuer) {
	repo := newFakeDocumentRepo()
	store := newFakeStorage()
	queue := &fakeEnqueuer{}
	return NewDocumentService(repo, store, queue, extractor), repo, store, queue
}

func TestUpload_CreatesPendingDocumentAndEnqueuesJob(t *testing.T) {
	svc, repo, store, queue := newDocumentFixture(&fakeExtractor{})
	userID := uuid.New()

	doc, err := svc.Upload(context.Background(), userID, "invoice.pdf", []byte("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, models.DocumentPending, doc.Status)
	assert.False(t, doc.Verified)
	assert.Nil(t, doc.ExtractedData)
	assert.NotEmpty(t, doc.FileKey)
	assert.Contains(t, store.files, doc.FileKey)

	stored, err := repo.GetByID(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DocumentPending, stored.Status)

	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, jobs.TypeDocumentExtraction, queue.enqueued[0].Type)

	var payload jobs.ExtractionPayload
	require.NoError(t, json.Unmarshal(queue.enqueued[0].Payload, &payload))
	assert.Equal(t, doc.ID, payload.DocumentID)
}

func TestUpload_RejectsDisallowedMimeType(t *testing.T) {
	svc, repo, _, queue := newDocumentFixture(&fakeExtractor{})

	_, err := svc.Upload(context.Background(), uuid.New(), "malware.exe", []byte("MZ"), "application/octet-stream")
	assert.Error(t, err)
	assert.Empty(t, repo.docs)
	assert.Empty(t, queue.enqueued)
}

func TestExtractionHandler_CompletesDocument(t *testing.T) {
	vendor := "Acme Corp"
	total := 1250.0
	extractor := &fakeExtractor{result: &extract.ExtractedDocument{
		DocumentType: extract.TypeInvoice,
		VendorName:   &vendor,
		TotalAmount:  &total,
		LineItems:    []extract.LineItem{},
	}}
	svc, repo, _, queue := newDocumentFixture(extractor)
	userID := uuid.New()

	doc, err := svc.Upload(context.Background(), userID, "invoice.pdf", []byte("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)

	handler := NewExtractionHandler(svc)
	require.NoError(t, handler.Handle(context.Background(), &queue.enqueued[0]))

	updated, err := repo.GetByID(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DocumentCompleted, updated.Status)
	assert.False(t, updated.Verified)
	assert.True(t, updated.Reviewable())
	require.NotNil(t, updated.ProcessedAt)

	var result extract.ExtractedDocument
	require.NoError(t, json.Unmarshal(updated.ExtractedData, &result))
	assert.Equal(t, extract.TypeInvoice, result.DocumentType)
	require.NotNil(t, result.VendorName)
	assert.Equal(t, "Acme Corp", *result.VendorName)
}

func TestExtractionHandler_FailureMarksDocumentFailed(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("OCR timeout")}
	svc, repo, _, queue := newDocumentFixture(extractor)

	doc, err := svc.Upload(context.Background(), uuid.New(), "receipt.png", []byte("png"), "image/png")
	require.NoError(t, err)

	handler := NewExtractionHandler(svc)
	err = handler.Handle(context.Background(), &queue.enqueued[0])
	assert.Error(t, err)

	updated, getErr := repo.GetByID(doc.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.DocumentFailed, updated.Status)
	assert.Nil(t, updated.ExtractedData)
	assert.Contains(t, updated.ErrorMessage, "OCR timeout")
	assert.False(t, updated.Reviewable())
}

func TestExtractionHandler_SkipsDeletedDocument(t *testing.T) {
	svc, _, _, _ := newDocumentFixture(&fakeExtractor{})
	handler := NewExtractionHandler(svc)

	payload, _ := json.Marshal(jobs.ExtractionPayload{DocumentID: uuid.New()})
	err := handler.Handle(context.Background(), &jobs.Job{ID: uuid.New(), Payload: payload})
	assert.NoError(t, err)
}

func TestAccept_VerifiesCompletedDocument(t *testing.T) {
	svc, repo, _, queue := newDocumentFixture(&fakeExtractor{result: &extract.ExtractedDocument{DocumentType: extract.TypeReceipt}})
	userID := uuid.New()

	doc, err := svc.Upload(context.Background(), userID, "receipt.png", []byte("png"), "image/png")
	require.NoError(t, err)
	require.NoError(t, NewExtractionHandler(svc).Handle(context.Background(), &queue.enqueued[0]))

	accepted, err := svc.Accept(userID, doc.ID)
	require.NoError(t, err)
	assert.True(t, accepted.Verified)
	assert.Equal(t, models.DocumentCompleted, accepted.Status)
	assert.False(t, accepted.Reviewable())

	// Accepting again is a no-op success
	again, err := svc.Accept(userID, doc.ID)
	require.NoError(t, err)
	assert.True(t, again.Verified)

	stored, _ := repo.GetByID(doc.ID)
	assert.True(t, stored.Verified)
}

func TestAccept_RejectsNonCompletedDocument(t *testing.T) {
	svc, _, _, _ := newDocumentFixture(&fakeExtractor{})
	userID := uuid.New()

	doc, err := svc.Upload(context.Background(), userID, "invoice.pdf", []byte("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)

	_, err = svc.Accept(userID, doc.ID)
	assert.ErrorIs(t, err, ErrNotReviewable)
}

func TestAccept_ScopedToOwner(t *testing.T) {
	svc, _, _, queue := newDocumentFixture(&fakeExtractor{result: &extract.ExtractedDocument{DocumentType: extract.TypeOther}})
	owner := uuid.New()

	doc, err := svc.Upload(context.Background(), owner, "doc.pdf", []byte("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)
	require.NoError(t, NewExtractionHandler(svc).Handle(context.Background(), &queue.enqueued[0]))

	_, err = svc.Accept(uuid.New(), doc.ID)
	assert.Error(t, err)
}

func TestReject_DeletesDocumentAndFile(t *testing.T) {
	svc, repo, store, queue := newDocumentFixture(&fakeExtractor{result: &extract.ExtractedDocument{DocumentType: extract.TypeInvoice}})
	userID := uuid.New()

	doc, err := svc.Upload(context.Background(), userID, "invoice.pdf", []byte("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)
	require.NoError(t, NewExtractionHandler(svc).Handle(context.Background(), &queue.enqueued[0]))

	require.NoError(t, svc.Reject(context.Background(), userID, doc.ID))

	_, err = repo.GetByID(doc.ID)
	assert.Error(t, err)
	assert.Empty(t, store.files)
}

func TestReject_AllowsFailedDocument(t *testing.T) {
	svc, repo, _, queue := newDocumentFixture(&fakeExtractor{err: errors.New("boom")})
	userID := uuid.New()

	doc, err := svc.Upload(context.Background(), userID, "bad.pdf", []byte("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)
	_ = NewExtractionHandler(svc).Handle(context.Background(), &queue.enqueued[0])

	require.NoError(t, svc.Reject(context.Background(), userID, doc.ID))
	_, err = repo.GetByID(doc.ID)
	assert.Error(t, err)
}

func TestReject_BlocksInFlightAndVerifiedDocuments(t *testing.T) {
	svc, _, _, queue := newDocumentFixture(&fakeExtractor{result: &extract.ExtractedDocument{DocumentType: extract.TypeInvoice}})
	userID := uuid.New()

	pending, err := svc.Upload(context.Background(), userID, "a.pdf", []byte("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Reject(context.Background(), userID, pending.ID), ErrNotReviewable)

	require.NoError(t, NewExtractionHandler(svc).Handle(context.Background(), &queue.enqueued[0]))
	_, err = svc.Accept(userID, pending.ID)
	require.NoError(t, err)

	err = svc.Reject(context.Background(), userID, pending.ID)
	assert.Error(t, err)
}
