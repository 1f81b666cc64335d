package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spivot-ai/spivot-backend/internal/core/auth"
	"github.com/spivot-ai/spivot-backend/internal/models"
	"github.com/spivot-ai/spivot-backend/internal/services"
)

// CashflowHandler serves transactions and the Treasurer's analyses.
type CashflowHandler struct {
	cashflowService *services.CashflowService
}

// NewCashflowHandler creates a cashflow handler.
func NewCashflowHandler(cashflowService *services.CashflowService) *CashflowHandler {
	return &CashflowHandler{cashflowService: cashflowService}
}

// CreateTransaction godoc
// @Summary Record a transaction
// @Tags Cashflow
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body models.CreateTransactionRequest true "Transaction data"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} map[string]interface{}
// @Router /transactions [post]
func (h *CashflowHandler) CreateTransaction(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req models.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	tx, err := h.cashflowService.CreateTransaction(userID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

// ListTransactions godoc
// @Summary List transactions, most recent first
// @Tags Cashflow
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param limit query int false "Max entries"
// @Success 200 {array} models.Transaction
// @Router /transactions [get]
func (h *CashflowHandler) ListTransactions(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	transactions, err := h.cashflowService.ListTransactions(userID, c.QueryInt("limit", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list transactions",
		})
	}
	return c.JSON(transactions)
}

// Analyze godoc
// @Summary Cashflow analysis (burn rate, runway, alert level)
// @Tags Cashflow
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} agents.CashflowAnalysis
// @Router /cashflow/analysis [get]
func (h *CashflowHandler) Analyze(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	analysis, err := h.cashflowService.Analyze(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to analyze cashflow",
		})
	}
	return c.JSON(analysis)
}

// Projection godoc
// @Summary Projected balance series at the current burn rate
// @Tags Cashflow
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param days query int false "Projection horizon" default(30)
// @Success 200 {array} agents.BalancePoint
// @Router /cashflow/projection [get]
func (h *CashflowHandler) Projection(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	points, err := h.cashflowService.ProjectBalance(userID, c.QueryInt("days", 30))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to project balance",
		})
	}
	return c.JSON(points)
}

// ExpenseBreakdown godoc
// @Summary Debit totals per category
// @Tags Cashflow
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param months query int false "Lookback window in months" default(3)
// @Success 200 {array} analytics.CategoryBreakdown
// @Router /cashflow/expenses [get]
func (h *CashflowHandler) ExpenseBreakdown(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	breakdown, err := h.cashflowService.ExpenseBreakdown(c.Context(), userID, c.QueryInt("months", 3))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to aggregate expenses",
		})
	}
	return c.JSON(breakdown)
}

// MonthlySeries godoc
// @Summary Monthly inflow/outflow chart data
// @Tags Cashflow
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param months query int false "Lookback window in months" default(6)
// @Success 200 {array} analytics.MonthlyCashflow
// @Router /cashflow/monthly [get]
func (h *CashflowHandler) MonthlySeries(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	series, err := h.cashflowService.MonthlySeries(c.Context(), userID, c.QueryInt("months", 6))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to aggregate monthly cashflow",
		})
	}
	return c.JSON(series)
}
