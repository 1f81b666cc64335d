// Package jobs is a Postgres-backed background job queue. Documents are
// extracted asynchronously: the upload handler enqueues a job and workers
// pick it up. Failed jobs stay failed; re-running an extraction means
// enqueueing a new job.
package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// JobStatus represents the lifecycle state of a job.
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job types
const (
	TypeDocumentExtraction = "document_extraction"
)

// Job is a queued unit of background work.
type Job struct {
	ID      uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"userId"`
	Type    string         `gorm:"type:varchar(100);not null;index" json:"type"`
	Payload datatypes.JSON `gorm:"type:jsonb" json:"payload"`

	Status JobStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	FailedAt    *time.Time `json:"failedAt,omitempty"`
	Error       string     `gorm:"type:text" json:"error,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Job) TableName() string {
	return "jobs"
}

// ExtractionPayload is the payload of a document_extraction job.
type ExtractionPayload struct {
	DocumentID uuid.UUID `json:"document_id"`
}

// Handler processes jobs of one type.
type Handler interface {
	Handle(ctx context.Context, job *Job) error
	GetType() string
}

// WorkerConfig configures the polling worker pool.
type WorkerConfig struct {
	Concurrency  int
	PollInterval time.Duration
	Timeout      time.Duration
}

// DefaultWorkerConfig returns the worker defaults.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Concurrency:  2,
		PollInterval: 1 * time.Second,
		Timeout:      2 * time.Minute,
	}
}
