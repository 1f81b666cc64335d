package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spivot-ai/spivot-backend/internal/core/auth"
	"github.com/spivot-ai/spivot-backend/internal/services"
)

// DashboardHandler serves the derived metrics endpoints.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Metrics godoc
// @Summary Dashboard summary metrics
// @Description Recomputed on demand from the caller's transactions and inventory
// @Tags Dashboard
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} agents.DashboardMetrics
// @Failure 401 {object} map[string]interface{}
// @Router /dashboard/metrics [get]
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	metrics, err := h.dashboardService.Metrics(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute metrics",
		})
	}
	return c.JSON(metrics)
}

// Score godoc
// @Summary Spivot Score breakdown
// @Tags Dashboard
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} agents.SpivotScore
// @Failure 401 {object} map[string]interface{}
// @Router /dashboard/score [get]
func (h *DashboardHandler) Score(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	score, err := h.dashboardService.Score(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute score",
		})
	}
	return c.JSON(score)
}

// ActionFeed godoc
// @Summary Recent agent activity
// @Tags Dashboard
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param limit query int false "Max entries" default(20)
// @Success 200 {array} models.AgentLog
// @Failure 401 {object} map[string]interface{}
// @Router /dashboard/actions [get]
func (h *DashboardHandler) ActionFeed(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	logs, err := h.dashboardService.ActionFeed(userID, c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load action feed",
		})
	}
	return c.JSON(logs)
}
