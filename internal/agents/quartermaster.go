package agents

import (
	"math"

	"github.com/spivot-ai/spivot-backend/internal/models"
)

// Quartermaster manages stock classification and replenishment planning.
type Quartermaster struct {
	SafetyStockDays int
}

// NewQuartermaster creates a Quartermaster with the default safety stock.
func NewQuartermaster() *Quartermaster {
	return &Quartermaster{SafetyStockDays: 3}
}

// StockStatus classifies an item against its reorder level.
// critical when qty is at or below half the reorder level, warning when at
// or below the reorder level, ok above it. Boundary values classify
// downward: qty == reorder_level is warning, qty == half is critical.
func (q *Quartermaster) StockStatus(item models.InventoryItem) models.StockStatus {
	switch {
	case item.Qty <= item.ReorderLevel*0.5:
		return models.StockCritical
	case item.Qty <= item.ReorderLevel:
		return models.StockWarning
	default:
		return models.StockOK
	}
}

// TotalInventoryValue sums qty*unit_cost across a snapshot.
func (q *Quartermaster) TotalInventoryValue(items []models.InventoryItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Qty * item.UnitCost
	}
	return total
}

// PendingOrders counts items strictly below their reorder level.
//
// Note the operator: this count uses strict <, while StockStatus uses <=.
// The asymmetry is a preserved business rule, not an accident of this code;
// do not unify the two without confirming intended semantics.
func (q *Quartermaster) PendingOrders(items []models.InventoryItem) int {
	count := 0
	for _, item := range items {
		if item.Qty < item.ReorderLevel {
			count++
		}
	}
	return count
}

// ReorderPoint computes (daily_usage * lead_time) + safety stock.
func (q *Quartermaster) ReorderPoint(dailyUsage float64, leadTimeDays int) float64 {
	safetyStock := dailyUsage * float64(q.SafetyStockDays)
	return round2(dailyUsage*float64(leadTimeDays) + safetyStock)
}

// PlanReorder checks an item against its demand-derived reorder point and,
// when stock is short, returns an alert and a draft purchase order sized to
// cover the lead time, safety stock and a one-week buffer.
func (q *Quartermaster) PlanReorder(item models.InventoryItem, predictedDemand float64, forecastDays int) (*InventoryAlert, *PurchaseOrderDraft) {
	var dailyUsage float64
	if forecastDays > 0 {
		dailyUsage = predictedDemand / float64(forecastDays)
	}

	reorderPoint := q.ReorderPoint(dailyUsage, item.LeadTimeDays)
	if item.Qty >= reorderPoint {
		return nil, nil
	}

	daysToCover := item.LeadTimeDays + q.SafetyStockDays + 7
	orderQty := dailyUsage*float64(daysToCover) - item.Qty
	orderQty = math.Max(orderQty, dailyUsage*7) // minimum one week of usage

	urgency := "low"
	if dailyUsage > 0 {
		switch daysOfStock := item.Qty / dailyUsage; {
		case daysOfStock < 3:
			urgency = "high"
		case daysOfStock < 7:
			urgency = "medium"
		}
	}

	alert := &InventoryAlert{
		SKU:               item.SKU,
		Name:              item.Name,
		CurrentQty:        item.Qty,
		ReorderPoint:      reorderPoint,
		SuggestedOrderQty: round2(orderQty),
		Urgency:           urgency,
	}

	order := &PurchaseOrderDraft{
		SKU:           item.SKU,
		ItemName:      item.Name,
		Quantity:      round2(orderQty),
		Unit:          item.Unit,
		EstimatedCost: round2(orderQty * item.UnitCost),
		Urgency:       urgency,
	}

	return alert, order
}

// BatchPlan runs PlanReorder across a snapshot and collects the drafts.
// Items without a forecast fall back to half their current stock as demand.
func (q *Quartermaster) BatchPlan(items []models.InventoryItem, demandBySKU map[string]float64) []PurchaseOrderDraft {
	var orders []PurchaseOrderDraft
	for _, item := range items {
		demand, ok := demandBySKU[item.SKU]
		if !ok {
			demand = item.Qty * 0.5
		}
		if _, order := q.PlanReorder(item, demand, 30); order != nil {
			orders = append(orders, *order)
		}
	}
	return orders
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
