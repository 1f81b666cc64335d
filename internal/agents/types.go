// Package agents holds the derived-metrics engines behind the dashboard:
// Treasurer (cashflow), Quartermaster (inventory) and Underwriter (credit
// scoring). Every computation here is a pure function of its inputs; inputs
// are assumed validated upstream and nothing in this package touches storage.
package agents

// AlertLevel classifies a cashflow analysis result
type AlertLevel string

const (
	AlertNormal   AlertLevel = "normal"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

// CashflowAnalysis is the Treasurer's reduction of a transaction snapshot.
type CashflowAnalysis struct {
	MonthlyInflow  float64    `json:"monthly_inflow"`
	MonthlyOutflow float64    `json:"monthly_outflow"`
	CurrentBalance float64    `json:"current_balance"`
	BurnRate       float64    `json:"burn_rate"`
	CashRunwayDays int        `json:"cash_runway_days"`
	AlertLevel     AlertLevel `json:"alert_level"`
}

// BalancePoint is one step of a projected balance series.
type BalancePoint struct {
	Day              int     `json:"day"`
	Date             string  `json:"date"`
	ProjectedBalance float64 `json:"projected_balance"`
}

// InventoryAlert flags an item below its reorder point.
type InventoryAlert struct {
	SKU               string  `json:"sku"`
	Name              string  `json:"name"`
	CurrentQty        float64 `json:"current_qty"`
	ReorderPoint      float64 `json:"reorder_point"`
	SuggestedOrderQty float64 `json:"suggested_order_qty"`
	Urgency           string  `json:"urgency"` // low, medium, high
}

// PurchaseOrderDraft is a Quartermaster-suggested replenishment order.
type PurchaseOrderDraft struct {
	SKU           string  `json:"sku"`
	ItemName      string  `json:"item_name"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	EstimatedCost float64 `json:"estimated_cost"`
	Urgency       string  `json:"urgency"`
}

// SpivotScore is the Underwriter's 300-900 creditworthiness index.
type SpivotScore struct {
	Score                int     `json:"score"`
	CashConsistency      float64 `json:"cash_consistency"`
	RevenueGrowth        float64 `json:"revenue_growth"`
	VendorPaymentHistory float64 `json:"vendor_payment_history"`
	RiskLevel            string  `json:"risk_level"` // low, medium, high
}

// DashboardMetrics is the derived dashboard summary. It is recomputed on
// demand from transaction and inventory snapshots and never stored.
type DashboardMetrics struct {
	CashRunwayDays      int     `json:"cash_runway_days"`
	BurnRate            float64 `json:"burn_rate"`
	MonthlyInflow       float64 `json:"monthly_inflow"`
	MonthlyOutflow      float64 `json:"monthly_outflow"`
	CurrentBalance      float64 `json:"current_balance"`
	PendingOrders       int     `json:"pending_orders"`
	TotalInventoryValue float64 `json:"total_inventory_value"`
	SpivotScore         int     `json:"spivot_score"`
}
