package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionType distinguishes inflows from outflows
type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// Transaction represents a financial transaction (bank statement entry).
// Transactions are append-only: created by user action, never updated in place.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_user" json:"user_id"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Amount      float64         `gorm:"type:decimal(15,2);not null" json:"amount"` // always positive; Type carries the sign
	Type        TransactionType `gorm:"type:varchar(10);not null" json:"type"`
	Category    string          `gorm:"type:varchar(100);not null;default:'uncategorized'" json:"category"`
	Description string          `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationship
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate sets UUID before creating
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// CreateTransactionRequest represents a transaction creation request
type CreateTransactionRequest struct {
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
}
