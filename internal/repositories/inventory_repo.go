package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spivot-ai/spivot-backend/internal/models"
)

// InventoryRepo interface defines inventory item operations
type InventoryRepo interface {
	Create(item *models.InventoryItem) error
	GetByID(id uuid.UUID) (*models.InventoryItem, error)
	GetBySKU(userID uuid.UUID, sku string) (*models.InventoryItem, error)
	ListByUser(userID uuid.UUID) ([]models.InventoryItem, error)
	Update(item *models.InventoryItem) error
	AdjustQty(id uuid.UUID, delta float64) error
	Delete(id uuid.UUID) error
}

type inventoryRepo struct {
	db *gorm.DB
}

// NewInventoryRepo creates a new inventory repository
func NewInventoryRepo(db *gorm.DB) InventoryRepo {
	return &inventoryRepo{db: db}
}

func (r *inventoryRepo) Create(item *models.InventoryItem) error {
	return r.db.Create(item).Error
}

func (r *inventoryRepo) GetByID(id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) GetBySKU(userID uuid.UUID, sku string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.Where("user_id = ? AND sku = ?", userID, sku).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) ListByUser(userID uuid.UUID) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.Where("user_id = ?", userID).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepo) Update(item *models.InventoryItem) error {
	return r.db.Save(item).Error
}

// AdjustQty applies a relative stock change (restock or consumption).
func (r *inventoryRepo) AdjustQty(id uuid.UUID, delta float64) error {
	res := r.db.Model(&models.InventoryItem{}).
		Where("id = ?", id).
		UpdateColumn("qty", gorm.Expr("qty + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("inventory item %s not found", id)
	}
	return nil
}

func (r *inventoryRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.InventoryItem{}, "id = ?", id).Error
}
