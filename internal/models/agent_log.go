package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AgentSeverity classifies an agent log entry
type AgentSeverity string

const (
	SeverityInfo     AgentSeverity = "info"
	SeverityWarning  AgentSeverity = "warning"
	SeverityCritical AgentSeverity = "critical"
)

// AgentLog records an agent run for the dashboard action feed.
type AgentLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_agent_logs_user" json:"user_id"`
	AgentName string         `gorm:"type:varchar(50);not null;index" json:"agent_name"`
	Action    string         `gorm:"type:text;not null" json:"action"`
	Result    string         `gorm:"type:text" json:"result,omitempty"`
	Severity  AgentSeverity  `gorm:"type:varchar(10);not null;default:'info'" json:"severity"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name
func (AgentLog) TableName() string {
	return "agent_logs"
}

// BeforeCreate sets UUID before creating
func (l *AgentLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
