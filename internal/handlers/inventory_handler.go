package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spivot-ai/spivot-backend/internal/agents"
	"github.com/spivot-ai/spivot-backend/internal/core/auth"
	"github.com/spivot-ai/spivot-backend/internal/models"
	"github.com/spivot-ai/spivot-backend/internal/services"
)

// InventoryHandler serves stock item endpoints.
type InventoryHandler struct {
	inventoryService *services.InventoryService
}

// NewInventoryHandler creates an inventory handler.
func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateItem godoc
// @Summary Create a stock item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body models.CreateInventoryItemRequest true "Item data"
// @Success 201 {object} models.InventoryItem
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /inventory [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req models.CreateInventoryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	item, err := h.inventoryService.CreateItem(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrSKUTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// ListItems godoc
// @Summary List stock items with derived status
// @Tags Inventory
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} models.InventoryItemResponse
// @Router /inventory [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	items, err := h.inventoryService.ListItems(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list inventory",
		})
	}
	return c.JSON(items)
}

// GetItem godoc
// @Summary Get a single stock item
// @Tags Inventory
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Item ID"
// @Success 200 {object} models.InventoryItem
// @Failure 404 {object} map[string]interface{}
// @Router /inventory/{id} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item id"})
	}

	item, err := h.inventoryService.GetItem(userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get item"})
	}
	return c.JSON(item)
}

// Alerts godoc
// @Summary List items at or below their reorder level
// @Tags Inventory
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} models.InventoryItemResponse
// @Router /inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	items, err := h.inventoryService.LowStockItems(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list stock alerts",
		})
	}
	return c.JSON(items)
}

// UpdateItem godoc
// @Summary Update a stock item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Item ID"
// @Param request body models.UpdateInventoryItemRequest true "Fields to update"
// @Success 200 {object} models.InventoryItem
// @Failure 404 {object} map[string]interface{}
// @Router /inventory/{id} [patch]
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item id"})
	}

	var req models.UpdateInventoryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	item, err := h.inventoryService.UpdateItem(userID, itemID, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(item)
}

// AdjustQty godoc
// @Summary Apply a relative stock adjustment
// @Tags Inventory
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Item ID"
// @Param request body object{delta=number} true "Adjustment"
// @Success 200 {object} models.InventoryItem
// @Router /inventory/{id}/adjust [post]
func (h *InventoryHandler) AdjustQty(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item id"})
	}

	var req struct {
		Delta float64 `json:"delta"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	item, err := h.inventoryService.AdjustQty(userID, itemID, req.Delta)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(item)
}

// DeleteItem godoc
// @Summary Delete a stock item
// @Tags Inventory
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Item ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /inventory/{id} [delete]
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item id"})
	}

	if err := h.inventoryService.DeleteItem(userID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete item"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReorderPlan godoc
// @Summary Suggested purchase orders for low stock
// @Tags Inventory
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} agents.PurchaseOrderDraft
// @Router /inventory/reorder-plan [get]
func (h *InventoryHandler) ReorderPlan(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	orders, err := h.inventoryService.ReorderPlan(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to plan reorders",
		})
	}
	if orders == nil {
		orders = []agents.PurchaseOrderDraft{}
	}
	return c.JSON(orders)
}

// SKULabel godoc
// @Summary QR code shelf label for an item's SKU
// @Tags Inventory
// @Produce png
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Item ID"
// @Param size query int false "Image size in pixels" default(256)
// @Success 200 {file} binary
// @Failure 404 {object} map[string]interface{}
// @Router /inventory/{id}/label [get]
func (h *InventoryHandler) SKULabel(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item id"})
	}

	png, err := h.inventoryService.SKULabel(userID, itemID, c.QueryInt("size", 256))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to render label"})
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
