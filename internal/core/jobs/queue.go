package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Queue manages job rows in Postgres.
type Queue struct {
	db *gorm.DB
}

// NewQueue creates a job queue over the given database.
func NewQueue(db *gorm.DB) *Queue {
	return &Queue{db: db}
}

// Enqueue adds a pending job.
func (q *Queue) Enqueue(ctx context.Context, userID uuid.UUID, jobType string, payload interface{}) (*Job, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize payload: %w", err)
	}

	job := &Job{
		UserID:  userID,
		Type:    jobType,
		Payload: payloadJSON,
		Status:  StatusPending,
	}

	if err := q.db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// Dequeue claims the oldest pending job and marks it processing. Returns
// (nil, nil) when the queue is empty. SKIP LOCKED keeps concurrent workers
// from claiming the same row.
func (q *Queue) Dequeue(ctx context.Context) (*Job, error) {
	var job Job

	err := q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ?", StatusPending).
			Order("created_at ASC").
			Limit(1).
			First(&job).Error
		if err != nil {
			return err
		}

		now := time.Now()
		job.Status = StatusProcessing
		job.StartedAt = &now
		return tx.Save(&job).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue job: %w", err)
	}
	return &job, nil
}

// MarkCompleted marks a job completed.
func (q *Queue) MarkCompleted(ctx context.Context, jobID uuid.UUID) error {
	return q.db.WithContext(ctx).Model(&Job{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"status":       StatusCompleted,
		"completed_at": time.Now(),
	}).Error
}

// MarkFailed marks a job failed with the handler error. There is no retry:
// the document the job belongs to records the failure and the user decides
// what happens next.
func (q *Queue) MarkFailed(ctx context.Context, jobID uuid.UUID, cause error) error {
	return q.db.WithContext(ctx).Model(&Job{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"status":    StatusFailed,
		"failed_at": time.Now(),
		"error":     cause.Error(),
	}).Error
}

// DeleteOld removes completed and failed jobs older than the cutoff.
func (q *Queue) DeleteOld(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	result := q.db.WithContext(ctx).
		Where("status IN ? AND updated_at < ?", []JobStatus{StatusCompleted, StatusFailed}, cutoff).
		Delete(&Job{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old jobs: %w", result.Error)
	}
	return result.RowsAffected, nil
}
