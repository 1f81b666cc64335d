package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockStatus is the derived per-item stock classification
type StockStatus string

const (
	StockCritical StockStatus = "critical"
	StockWarning  StockStatus = "warning"
	StockOK       StockStatus = "ok"
)

// InventoryItem represents a stock item. SKU is unique per user.
type InventoryItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_user_sku" json:"user_id"`
	SKU          string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_inventory_user_sku" json:"sku"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	Qty          float64   `gorm:"type:decimal(12,2);not null;default:0" json:"qty"`
	Unit         string    `gorm:"type:varchar(50);not null;default:'units'" json:"unit"`
	ReorderLevel float64   `gorm:"type:decimal(12,2);not null;default:0" json:"reorder_level"`
	LeadTimeDays int       `gorm:"type:integer;not null;default:7" json:"lead_time_days"`
	UnitCost     float64   `gorm:"type:decimal(12,2);not null;default:0" json:"unit_cost"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationship
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// BeforeCreate sets UUID before creating
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Value returns the total value of the on-hand stock
func (i *InventoryItem) Value() float64 {
	return i.Qty * i.UnitCost
}

// CreateInventoryItemRequest represents an inventory item creation request
type CreateInventoryItemRequest struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Qty          float64 `json:"qty"`
	Unit         string  `json:"unit,omitempty"`
	ReorderLevel float64 `json:"reorder_level"`
	LeadTimeDays int     `json:"lead_time_days,omitempty"`
	UnitCost     float64 `json:"unit_cost"`
}

// UpdateInventoryItemRequest represents an inventory item update request
type UpdateInventoryItemRequest struct {
	Name         *string  `json:"name,omitempty"`
	Qty          *float64 `json:"qty,omitempty"`
	Unit         *string  `json:"unit,omitempty"`
	ReorderLevel *float64 `json:"reorder_level,omitempty"`
	LeadTimeDays *int     `json:"lead_time_days,omitempty"`
	UnitCost     *float64 `json:"unit_cost,omitempty"`
}

// InventoryItemResponse is an item decorated with its derived stock status
type InventoryItemResponse struct {
	InventoryItem
	Status StockStatus `json:"status"`
}
