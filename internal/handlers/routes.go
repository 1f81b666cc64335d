package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"github.com/spivot-ai/spivot-backend/internal/core/auth"
	"github.com/spivot-ai/spivot-backend/internal/core/metrics"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Cashflow  *CashflowHandler
	Inventory *InventoryHandler
	Document  *DocumentHandler
	Export    *ExportHandler
}

// Register wires all routes onto the app. Everything under /api/v1 except
// auth, health, swagger and the metrics scrape endpoint requires a token.
func Register(app *fiber.App, h *Handlers, jwtService *auth.JWTService) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", metrics.Handler())
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")

	api.Post("/auth/register", h.Auth.Register)
	api.Post("/auth/login", h.Auth.Login)

	protected := api.Group("", auth.Middleware(jwtService))

	protected.Get("/dashboard/metrics", h.Dashboard.Metrics)
	protected.Get("/dashboard/score", h.Dashboard.Score)
	protected.Get("/dashboard/actions", h.Dashboard.ActionFeed)

	protected.Post("/transactions", h.Cashflow.CreateTransaction)
	protected.Get("/transactions", h.Cashflow.ListTransactions)
	protected.Get("/cashflow/analysis", h.Cashflow.Analyze)
	protected.Get("/cashflow/projection", h.Cashflow.Projection)
	protected.Get("/cashflow/expenses", h.Cashflow.ExpenseBreakdown)
	protected.Get("/cashflow/monthly", h.Cashflow.MonthlySeries)

	protected.Post("/inventory", h.Inventory.CreateItem)
	protected.Get("/inventory", h.Inventory.ListItems)
	protected.Get("/inventory/alerts", h.Inventory.Alerts)
	protected.Get("/inventory/reorder-plan", h.Inventory.ReorderPlan)
	protected.Get("/inventory/:id", h.Inventory.GetItem)
	protected.Patch("/inventory/:id", h.Inventory.UpdateItem)
	protected.Post("/inventory/:id/adjust", h.Inventory.AdjustQty)
	protected.Get("/inventory/:id/label", h.Inventory.SKULabel)
	protected.Delete("/inventory/:id", h.Inventory.DeleteItem)

	protected.Post("/documents", h.Document.Upload)
	protected.Get("/documents", h.Document.List)
	protected.Get("/documents/:id", h.Document.Get)
	protected.Post("/documents/:id/accept", h.Document.Accept)
	protected.Post("/documents/:id/reject", h.Document.Reject)

	protected.Get("/export/transactions", h.Export.Transactions)
	protected.Get("/export/inventory", h.Export.Inventory)
}
