package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spivot-ai/spivot-backend/internal/agents"
	"github.com/spivot-ai/spivot-backend/internal/models"
	"github.com/spivot-ai/spivot-backend/internal/repositories"
)

// DashboardService composes the derived dashboard summary from transaction
// and inventory snapshots. Nothing here is stored; every call recomputes.
type DashboardService struct {
	transactionRepo repositories.TransactionRepo
	inventoryRepo   repositories.InventoryRepo
	agentLogRepo    repositories.AgentLogRepo
	treasurer       *agents.Treasurer
	quartermaster   *agents.Quartermaster
	underwriter     *agents.Underwriter
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(
	transactionRepo repositories.TransactionRepo,
	inventoryRepo repositories.InventoryRepo,
	agentLogRepo repositories.AgentLogRepo,
	treasurer *agents.Treasurer,
	quartermaster *agents.Quartermaster,
	underwriter *agents.Underwriter,
) *DashboardService {
	return &DashboardService{
		transactionRepo: transactionRepo,
		inventoryRepo:   inventoryRepo,
		agentLogRepo:    agentLogRepo,
		treasurer:       treasurer,
		quartermaster:   quartermaster,
		underwriter:     underwriter,
	}
}

// Metrics computes the dashboard summary for a user.
func (s *DashboardService) Metrics(userID uuid.UUID) (*agents.DashboardMetrics, error) {
	transactions, err := s.transactionRepo.ListByUser(userID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	items, err := s.inventoryRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	cashflow := s.treasurer.AnalyzeCashflow(transactions)
	score := s.underwriter.ScoreFromTransactions(transactions)

	return &agents.DashboardMetrics{
		CashRunwayDays:      cashflow.CashRunwayDays,
		BurnRate:            cashflow.BurnRate,
		MonthlyInflow:       cashflow.MonthlyInflow,
		MonthlyOutflow:      cashflow.MonthlyOutflow,
		CurrentBalance:      cashflow.CurrentBalance,
		PendingOrders:       s.quartermaster.PendingOrders(items),
		TotalInventoryValue: s.quartermaster.TotalInventoryValue(items),
		SpivotScore:         score.Score,
	}, nil
}

// Score computes the full Spivot Score breakdown for a user.
func (s *DashboardService) Score(userID uuid.UUID) (*agents.SpivotScore, error) {
	transactions, err := s.transactionRepo.ListByUser(userID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	score := s.underwriter.ScoreFromTransactions(transactions)
	return &score, nil
}

// ActionFeed returns the recent agent log entries for a user.
func (s *DashboardService) ActionFeed(userID uuid.UUID, limit int) ([]models.AgentLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.agentLogRepo.ListByUser(userID, limit)
}
