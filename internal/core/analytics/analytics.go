// Package analytics runs the aggregate queries behind the dashboard charts.
// Heavy lifting stays in Postgres; Go only shapes the rows.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spivot-ai/spivot-backend/internal/models"
)

// CategoryBreakdown is one slice of the expense-by-category chart.
type CategoryBreakdown struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

// MonthlyCashflow is one bar of the monthly inflow/outflow chart.
type MonthlyCashflow struct {
	Month   string  `json:"month"` // YYYY-MM
	Inflow  float64 `json:"inflow"`
	Outflow float64 `json:"outflow"`
	Net     float64 `json:"net"`
}

// Analytics aggregates transaction data for charting.
type Analytics struct {
	db *gorm.DB
}

// NewAnalytics creates an analytics aggregator.
func NewAnalytics(db *gorm.DB) *Analytics {
	return &Analytics{db: db}
}

// ExpensesByCategory sums debits per category since the cutoff, largest
// first, with each category's share of the total.
func (a *Analytics) ExpensesByCategory(ctx context.Context, userID uuid.UUID, since time.Time) ([]CategoryBreakdown, error) {
	var rows []CategoryBreakdown

	err := a.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("category, SUM(amount) AS total").
		Where("user_id = ? AND type = ? AND date >= ?", userID, models.TransactionDebit, since).
		Group("category").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses: %w", err)
	}

	var grandTotal float64
	for _, row := range rows {
		grandTotal += row.Total
	}
	if grandTotal > 0 {
		for i := range rows {
			rows[i].Percentage = rows[i].Total / grandTotal * 100
		}
	}

	return rows, nil
}

// MonthlyCashflowSeries returns per-month inflow and outflow for the last n
// months, oldest first.
func (a *Analytics) MonthlyCashflowSeries(ctx context.Context, userID uuid.UUID, months int) ([]MonthlyCashflow, error) {
	since := time.Now().AddDate(0, -months, 0)

	var rows []MonthlyCashflow
	err := a.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select(`to_char(date, 'YYYY-MM') AS month,
			COALESCE(SUM(amount) FILTER (WHERE type = 'credit'), 0) AS inflow,
			COALESCE(SUM(amount) FILTER (WHERE type = 'debit'), 0) AS outflow`).
		Where("user_id = ? AND date >= ?", userID, since).
		Group("to_char(date, 'YYYY-MM')").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly cashflow: %w", err)
	}

	for i := range rows {
		rows[i].Net = rows[i].Inflow - rows[i].Outflow
	}
	return rows, nil
}
