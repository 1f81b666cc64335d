package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spivot-ai/spivot-backend/internal/models"
)

// AgentLogRepo interface defines agent activity log operations
type AgentLogRepo interface {
	Create(entry *models.AgentLog) error
	ListByUser(userID uuid.UUID, limit int) ([]models.AgentLog, error)
}

type agentLogRepo struct {
	db *gorm.DB
}

// NewAgentLogRepo creates a new agent log repository
func NewAgentLogRepo(db *gorm.DB) AgentLogRepo {
	return &agentLogRepo{db: db}
}

func (r *agentLogRepo) Create(entry *models.AgentLog) error {
	return r.db.Create(entry).Error
}

// ListByUser returns the newest entries first for the action feed.
func (r *agentLogRepo) ListByUser(userID uuid.UUID, limit int) ([]models.AgentLog, error) {
	var logs []models.AgentLog
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
