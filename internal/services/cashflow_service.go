package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spivot-ai/spivot-backend/internal/agents"
	"github.com/spivot-ai/spivot-backend/internal/core/analytics"
	"github.com/spivot-ai/spivot-backend/internal/models"
	"github.com/spivot-ai/spivot-backend/internal/repositories"
)

// CashflowService records transactions and serves the Treasurer's analyses.
type CashflowService struct {
	transactionRepo repositories.TransactionRepo
	treasurer       *agents.Treasurer
	analytics       *analytics.Analytics
}

// NewCashflowService creates a cashflow service.
func NewCashflowService(transactionRepo repositories.TransactionRepo, treasurer *agents.Treasurer, analytics *analytics.Analytics) *CashflowService {
	return &CashflowService{
		transactionRepo: transactionRepo,
		treasurer:       treasurer,
		analytics:       analytics,
	}
}

// CreateTransaction validates and records a transaction. Amounts are always
// positive; Type carries the direction.
func (s *CashflowService) CreateTransaction(userID uuid.UUID, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	txType := models.TransactionType(req.Type)
	if txType != models.TransactionCredit && txType != models.TransactionDebit {
		return nil, fmt.Errorf("type must be credit or debit")
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	category := req.Category
	if category == "" {
		category = "uncategorized"
	}

	tx := &models.Transaction{
		UserID:      userID,
		Date:        date,
		Amount:      req.Amount,
		Type:        txType,
		Category:    category,
		Description: req.Description,
	}
	if err := s.transactionRepo.Create(tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return tx, nil
}

// ListTransactions returns a user's transactions, most recent first.
func (s *CashflowService) ListTransactions(userID uuid.UUID, limit int) ([]models.Transaction, error) {
	return s.transactionRepo.ListByUser(userID, limit)
}

// Analyze runs the Treasurer over the user's full transaction history.
func (s *CashflowService) Analyze(userID uuid.UUID) (*agents.CashflowAnalysis, error) {
	transactions, err := s.transactionRepo.ListByUser(userID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	analysis := s.treasurer.AnalyzeCashflow(transactions)
	return &analysis, nil
}

// ProjectBalance projects the balance forward at the current burn rate.
func (s *CashflowService) ProjectBalance(userID uuid.UUID, days int) ([]agents.BalancePoint, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	analysis, err := s.Analyze(userID)
	if err != nil {
		return nil, err
	}
	return s.treasurer.ProjectBalance(analysis.CurrentBalance, analysis.BurnRate, days), nil
}

// ExpenseBreakdown returns debit totals per category over the last n months.
func (s *CashflowService) ExpenseBreakdown(ctx context.Context, userID uuid.UUID, months int) ([]analytics.CategoryBreakdown, error) {
	if months <= 0 {
		months = 3
	}
	since := time.Now().AddDate(0, -months, 0)
	return s.analytics.ExpensesByCategory(ctx, userID, since)
}

// MonthlySeries returns the per-month inflow/outflow chart data.
func (s *CashflowService) MonthlySeries(ctx context.Context, userID uuid.UUID, months int) ([]analytics.MonthlyCashflow, error) {
	if months <= 0 || months > 24 {
		months = 6
	}
	return s.analytics.MonthlyCashflowSeries(ctx, userID, months)
}
