package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/spivot-ai/spivot-backend/internal/core/extract"
	"github.com/spivot-ai/spivot-backend/internal/core/jobs"
	"github.com/spivot-ai/spivot-backend/internal/core/storage"
	"github.com/spivot-ai/spivot-backend/internal/models"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) ListAll() ([]models.User, error) {
	users := make([]models.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, *user)
	}
	return users, nil
}

type fakeTransactionRepo struct {
	transactions []models.Transaction
}

func (f *fakeTransactionRepo) Create(tx *models.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	f.transactions = append(f.transactions, *tx)
	return nil
}

func (f *fakeTransactionRepo) GetByID(id uuid.UUID) (*models.Transaction, error) {
	for i := range f.transactions {
		if f.transactions[i].ID == id {
			return &f.transactions[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTransactionRepo) ListByUser(userID uuid.UUID, limit int) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range f.transactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeInventoryRepo struct {
	items map[uuid.UUID]*models.InventoryItem
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: make(map[uuid.UUID]*models.InventoryItem)}
}

func (f *fakeInventoryRepo) Create(item *models.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeInventoryRepo) GetByID(id uuid.UUID) (*models.InventoryItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeInventoryRepo) GetBySKU(userID uuid.UUID, sku string) (*models.InventoryItem, error) {
	for _, item := range f.items {
		if item.UserID == userID && item.SKU == sku {
			copied := *item
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInventoryRepo) ListByUser(userID uuid.UUID) ([]models.InventoryItem, error) {
	var out []models.InventoryItem
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeInventoryRepo) Update(item *models.InventoryItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeInventoryRepo) AdjustQty(id uuid.UUID, delta float64) error {
	item, ok := f.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Qty += delta
	return nil
}

func (f *fakeInventoryRepo) Delete(id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

type fakeAgentLogRepo struct {
	logs []models.AgentLog
}

func (f *fakeAgentLogRepo) Create(entry *models.AgentLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	f.logs = append(f.logs, *entry)
	return nil
}

func (f *fakeAgentLogRepo) ListByUser(userID uuid.UUID, limit int) ([]models.AgentLog, error) {
	var out []models.AgentLog
	for _, entry := range f.logs {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeDocumentRepo struct {
	docs map[uuid.UUID]*models.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[uuid.UUID]*models.Document)}
}

func (f *fakeDocumentRepo) Create(doc *models.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocumentRepo) GetByID(id uuid.UUID) (*models.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeDocumentRepo) ListByUser(userID uuid.UUID, limit int) ([]models.Document, error) {
	var out []models.Document
	for _, doc := range f.docs {
		if doc.UserID == userID {
			out = append(out, *doc)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeDocumentRepo) transition(id uuid.UUID, from models.DocumentStatus, apply func(*models.Document)) error {
	doc, ok := f.docs[id]
	if !ok || doc.Status != from {
		return gorm.ErrRecordNotFound
	}
	apply(doc)
	return nil
}

func (f *fakeDocumentRepo) MarkProcessing(id uuid.UUID) error {
	return f.transition(id, models.DocumentPending, func(d *models.Document) {
		d.Status = models.DocumentProcessing
	})
}

func (f *fakeDocumentRepo) MarkCompleted(id uuid.UUID, extracted datatypes.JSON) error {
	return f.transition(id, models.DocumentProcessing, func(d *models.Document) {
		now := time.Now()
		d.Status = models.DocumentCompleted
		d.ExtractedData = extracted
		d.ErrorMessage = ""
		d.ProcessedAt = &now
	})
}

func (f *fakeDocumentRepo) MarkFailed(id uuid.UUID, message string) error {
	return f.transition(id, models.DocumentProcessing, func(d *models.Document) {
		now := time.Now()
		d.Status = models.DocumentFailed
		d.ExtractedData = nil
		d.ErrorMessage = message
		d.ProcessedAt = &now
	})
}

func (f *fakeDocumentRepo) MarkVerified(id uuid.UUID) error {
	return f.transition(id, models.DocumentCompleted, func(d *models.Document) {
		d.Verified = true
	})
}

func (f *fakeDocumentRepo) Delete(id uuid.UUID) error {
	delete(f.docs, id)
	return nil
}

type fakeStorage struct {
	files map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (f *fakeStorage) Store(_ context.Context, data []byte, filename, _ string) (*storage.StoredFile, error) {
	key := "documents/" + filename
	f.files[key] = data
	return &storage.StoredFile{
		Key:  key,
		URL:  "http://files.test/" + key,
		Size: int64(len(data)),
	}, nil
}

func (f *fakeStorage) Fetch(_ context.Context, key string) ([]byte, error) {
	data, ok := f.files[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return data, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	delete(f.files, key)
	return nil
}

func (f *fakeStorage) GetURL(key string) string { return "http://files.test/" + key }

func (f *fakeStorage) GetProviderName() string { return "fake" }

type fakeEnqueuer struct {
	enqueued []jobs.Job
}

func (f *fakeEnqueuer) Enqueue(_ context.Context, userID uuid.UUID, jobType string, payload interface{}) (*jobs.Job, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	job := jobs.Job{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    jobType,
		Payload: raw,
		Status:  jobs.StatusPending,
	}
	f.enqueued = append(f.enqueued, job)
	return &job, nil
}

type fakeExtractor struct {
	result *extract.ExtractedDocument
	err    error
}

func (f *fakeExtractor) Extract(_ context.Context, _ []byte, _ string) (*extract.ExtractedDocument, error) {
	return f.result, f.err
}

func (f *fakeExtractor) GetProviderName() string { return "fake" }
