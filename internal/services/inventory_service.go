package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/spivot-ai/spivot-backend/internal/agents"
	"github.com/spivot-ai/spivot-backend/internal/models"
	"github.com/spivot-ai/spivot-backend/internal/repositories"
)

var ErrSKUTaken = errors.New("sku already exists for this user")

// InventoryService manages stock items and serves the Quartermaster's
// classifications and reorder plans.
type InventoryService struct {
	inventoryRepo repositories.InventoryRepo
	quartermaster *agents.Quartermaster
}

// NewInventoryService creates an inventory service.
func NewInventoryService(inventoryRepo repositories.InventoryRepo, quartermaster *agents.Quartermaster) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		quartermaster: quartermaster,
	}
}

// CreateItem validates and creates a stock item. SKU is unique per user.
func (s *InventoryService) CreateItem(userID uuid.UUID, req *models.CreateInventoryItemRequest) (*models.InventoryItem, error) {
	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		return nil, fmt.Errorf("sku is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Qty < 0 || req.ReorderLevel < 0 || req.UnitCost < 0 {
		return nil, fmt.Errorf("qty, reorder_level and unit_cost must not be negative")
	}

	if _, err := s.inventoryRepo.GetBySKU(userID, sku); err == nil {
		return nil, ErrSKUTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check sku: %w", err)
	}

	unit := req.Unit
	if unit == "" {
		unit = "units"
	}
	leadTime := req.LeadTimeDays
	if leadTime <= 0 {
		leadTime = 7
	}

	item := &models.InventoryItem{
		UserID:       userID,
		SKU:          sku,
		Name:         strings.TrimSpace(req.Name),
		Qty:          req.Qty,
		Unit:         unit,
		ReorderLevel: req.ReorderLevel,
		LeadTimeDays: leadTime,
		UnitCost:     req.UnitCost,
	}
	if err := s.inventoryRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return item, nil
}

// GetItem fetches one item, scoped to its owner.
func (s *InventoryService) GetItem(userID, itemID uuid.UUID) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

// ListItems returns the user's items decorated with derived stock status.
func (s *InventoryService) ListItems(userID uuid.UUID) ([]models.InventoryItemResponse, error) {
	items, err := s.inventoryRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	responses := make([]models.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, models.InventoryItemResponse{
			InventoryItem: item,
			Status:        s.quartermaster.StockStatus(item),
		})
	}
	return responses, nil
}

// LowStockItems returns only the items at or below their reorder level.
func (s *InventoryService) LowStockItems(userID uuid.UUID) ([]models.InventoryItemResponse, error) {
	items, err := s.ListItems(userID)
	if err != nil {
		return nil, err
	}

	alerts := make([]models.InventoryItemResponse, 0)
	for _, item := range items {
		if item.Status != models.StockOK {
			alerts = append(alerts, item)
		}
	}
	return alerts, nil
}

// UpdateItem applies a partial update to an item.
func (s *InventoryService) UpdateItem(userID, itemID uuid.UUID, req *models.UpdateInventoryItemRequest) (*models.InventoryItem, error) {
	item, err := s.GetItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("name must not be empty")
		}
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Qty != nil {
		if *req.Qty < 0 {
			return nil, fmt.Errorf("qty must not be negative")
		}
		item.Qty = *req.Qty
	}
	if req.Unit != nil && *req.Unit != "" {
		item.Unit = *req.Unit
	}
	if req.ReorderLevel != nil {
		if *req.ReorderLevel < 0 {
			return nil, fmt.Errorf("reorder_level must not be negative")
		}
		item.ReorderLevel = *req.ReorderLevel
	}
	if req.LeadTimeDays != nil && *req.LeadTimeDays > 0 {
		item.LeadTimeDays = *req.LeadTimeDays
	}
	if req.UnitCost != nil {
		if *req.UnitCost < 0 {
			return nil, fmt.Errorf("unit_cost must not be negative")
		}
		item.UnitCost = *req.UnitCost
	}

	if err := s.inventoryRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return item, nil
}

// AdjustQty applies a relative stock change (restock or consumption).
func (s *InventoryService) AdjustQty(userID, itemID uuid.UUID, delta float64) (*models.InventoryItem, error) {
	item, err := s.GetItem(userID, itemID)
	if err != nil {
		return nil, err
	}
	if item.Qty+delta < 0 {
		return nil, fmt.Errorf("adjustment would make qty negative")
	}
	if err := s.inventoryRepo.AdjustQty(itemID, delta); err != nil {
		return nil, fmt.Errorf("failed to adjust qty: %w", err)
	}
	return s.inventoryRepo.GetByID(itemID)
}

// DeleteItem removes an item, scoped to its owner.
func (s *InventoryService) DeleteItem(userID, itemID uuid.UUID) error {
	if _, err := s.GetItem(userID, itemID); err != nil {
		return err
	}
	return s.inventoryRepo.Delete(itemID)
}

// ReorderPlan runs the Quartermaster's batch planning over the user's stock.
func (s *InventoryService) ReorderPlan(userID uuid.UUID) ([]agents.PurchaseOrderDraft, error) {
	items, err := s.inventoryRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return s.quartermaster.BatchPlan(items, nil), nil
}

// SKULabel renders a PNG QR code encoding the item's SKU, for shelf labels.
func (s *InventoryService) SKULabel(userID, itemID uuid.UUID, size int) ([]byte, error) {
	item, err := s.GetItem(userID, itemID)
	if err != nil {
		return nil, err
	}
	if size < 64 || size > 1024 {
		size = 256
	}

	png, err := qrcode.Encode(item.SKU, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR label: %w", err)
	}
	return png, nil
}
