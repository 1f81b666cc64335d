package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessType categorizes an MSME business profile
type BusinessType string

const (
	BusinessManufacturing BusinessType = "manufacturing"
	BusinessService       BusinessType = "service"
	BusinessTrading       BusinessType = "trading"
	BusinessRetail        BusinessType = "retail"
)

// User represents a business account. All domain rows are scoped by UserID.
type User struct {
	ID           uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email        string       `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Name         string       `gorm:"type:text;not null" json:"name"`
	BusinessName string       `gorm:"type:text" json:"business_name,omitempty"`
	BusinessType BusinessType `gorm:"type:varchar(20);not null;default:'retail'" json:"business_type"`
	PasswordHash string       `gorm:"type:text;not null" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// BeforeCreate sets UUID before creating
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// RegisterRequest represents an account registration request
type RegisterRequest struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	BusinessName string `json:"business_name,omitempty"`
	BusinessType string `json:"business_type,omitempty"`
	Password     string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued token and basic profile
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in"`
	User      *User     `json:"user"`
	IssuedAt  time.Time `json:"issued_at"`
}
