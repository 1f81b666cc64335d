package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spivot-ai/spivot-backend/internal/core/auth"
	"github.com/spivot-ai/spivot-backend/internal/core/export"
	"github.com/spivot-ai/spivot-backend/internal/repositories"
)

// ExportHandler serves report downloads.
type ExportHandler struct {
	exportService   *export.Service
	transactionRepo repositories.TransactionRepo
	inventoryRepo   repositories.InventoryRepo
}

// NewExportHandler creates an export handler.
func NewExportHandler(exportService *export.Service, transactionRepo repositories.TransactionRepo, inventoryRepo repositories.InventoryRepo) *ExportHandler {
	return &ExportHandler{
		exportService:   exportService,
		transactionRepo: transactionRepo,
		inventoryRepo:   inventoryRepo,
	}
}

// Transactions godoc
// @Summary Download the transaction history report
// @Tags Export
// @Produce octet-stream
// @Param Authorization header string true "Bearer token"
// @Param format query string false "xlsx or pdf" default(xlsx)
// @Success 200 {file} binary
// @Router /export/transactions [get]
func (h *ExportHandler) Transactions(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	format := export.Format(c.Query("format", string(export.FormatExcel)))

	transactions, err := h.transactionRepo.ListByUser(userID, 0)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load transactions",
		})
	}

	var buf bytes.Buffer
	if err := h.exportService.ExportTransactions(format, transactions, &buf); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return h.send(c, format, "transactions", &buf)
}

// Inventory godoc
// @Summary Download the inventory report
// @Tags Export
// @Produce octet-stream
// @Param Authorization header string true "Bearer token"
// @Param format query string false "xlsx or pdf" default(xlsx)
// @Success 200 {file} binary
// @Router /export/inventory [get]
func (h *ExportHandler) Inventory(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	format := export.Format(c.Query("format", string(export.FormatExcel)))

	items, err := h.inventoryRepo.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load inventory",
		})
	}

	var buf bytes.Buffer
	if err := h.exportService.ExportInventory(format, items, &buf); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return h.send(c, format, "inventory", &buf)
}

func (h *ExportHandler) send(c *fiber.Ctx, format export.Format, name string, buf *bytes.Buffer) error {
	exporter, err := h.exportService.Exporter(format)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	filename := fmt.Sprintf("%s_%s%s", name, time.Now().Format("20060102"), exporter.FileExtension())
	c.Set("Content-Type", exporter.ContentType())
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
