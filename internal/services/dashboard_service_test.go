package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spivot-ai/spivot-backend/internal/agents"
	"github.com/spivot-ai/spivot-backend/internal/models"
)

func newDashboardFixture() (*DashboardService, *fakeTransactionRepo, *fakeInventoryRepo, *fakeAgentLogRepo) {
	txRepo := &fakeTransactionRepo{}
	invRepo := newFakeInventoryRepo()
	logRepo := &fakeAgentLogRepo{}
	svc := NewDashboardService(txRepo, invRepo, logRepo,
		agents.NewTreasurer(), agents.NewQuartermaster(), agents.NewUnderwriter())
	return svc, txRepo, invRepo, logRepo
}

func TestMetrics_EmptyAccount(t *testing.T) {
	svc, _, _, _ := newDashboardFixture()

	metrics, err := svc.Metrics(uuid.New())
	require.NoError(t, err)

	assert.Equal(t, agents.RunwayInfinite, metrics.CashRunwayDays)
	assert.Zero(t, metrics.BurnRate)
	assert.Zero(t, metrics.PendingOrders)
	assert.Zero(t, metrics.TotalInventoryValue)
	// Defaults (consistency 50, growth 0, vendor 80) land mid-band
	assert.Equal(t, 654, metrics.SpivotScore)
}

func TestMetrics_ComposesAgentOutputs(t *testing.T) {
	svc, txRepo, invRepo, _ := newDashboardFixture()
	userID := uuid.New()

	require.NoError(t, txRepo.Create(&models.Transaction{
		UserID: userID, Date: time.Now(), Amount: 90000, Type: models.TransactionCredit,
	}))
	require.NoError(t, txRepo.Create(&models.Transaction{
		UserID: userID, Date: time.Now(), Amount: 30000, Type: models.TransactionDebit,
	}))

	require.NoError(t, invRepo.Create(&models.InventoryItem{
		UserID: userID, SKU: "A", Name: "Low stock", Qty: 10, ReorderLevel: 50, UnitCost: 2,
	}))
	require.NoError(t, invRepo.Create(&models.InventoryItem{
		UserID: userID, SKU: "B", Name: "Healthy", Qty: 100, ReorderLevel: 50, UnitCost: 3,
	}))

	metrics, err := svc.Metrics(userID)
	require.NoError(t, err)

	assert.Equal(t, 90000.0, metrics.MonthlyInflow)
	assert.Equal(t, 30000.0, metrics.MonthlyOutflow)
	assert.Equal(t, 60000.0, metrics.CurrentBalance)
	assert.Equal(t, 1000.0, metrics.BurnRate)
	assert.Equal(t, 60, metrics.CashRunwayDays)
	assert.Equal(t, 1, metrics.PendingOrders)
	assert.Equal(t, 320.0, metrics.TotalInventoryValue)
	assert.GreaterOrEqual(t, metrics.SpivotScore, 300)
	assert.LessOrEqual(t, metrics.SpivotScore, 900)
}

func TestScore_GrowthSurvivesRepoOrdering(t *testing.T) {
	svc, txRepo, _, _ := newDashboardFixture()
	userID := uuid.New()

	// The repo lists newest-first; doubling credits must still read as growth.
	now := time.Now()
	for i, amount := range []float64{1000, 1000, 2000, 2000} {
		require.NoError(t, txRepo.Create(&models.Transaction{
			UserID: userID,
			Date:   now.AddDate(0, 0, -21+i*7),
			Amount: amount,
			Type:   models.TransactionCredit,
		}))
	}

	score, err := svc.Score(userID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, score.RevenueGrowth)
}

func TestAgentRunner_WritesActionFeed(t *testing.T) {
	txRepo := &fakeTransactionRepo{}
	invRepo := newFakeInventoryRepo()
	logRepo := &fakeAgentLogRepo{}
	userRepo := newFakeUserRepo()

	user := &models.User{Email: "owner@example.com", Name: "Owner", PasswordHash: "x"}
	require.NoError(t, userRepo.Create(user))

	// Deep in the red: critical treasurer entry expected
	require.NoError(t, txRepo.Create(&models.Transaction{
		UserID: user.ID, Date: time.Now(), Amount: 300000, Type: models.TransactionDebit,
	}))
	require.NoError(t, invRepo.Create(&models.InventoryItem{
		UserID: user.ID, SKU: "A", Name: "Empty shelf", Qty: 0, ReorderLevel: 50, LeadTimeDays: 7, UnitCost: 2,
	}))

	runner := NewAgentRunner(userRepo, txRepo, invRepo, logRepo,
		agents.NewTreasurer(), agents.NewQuartermaster())
	runner.RunAll()

	logs, err := logRepo.ListByUser(user.ID, 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	byAgent := make(map[string]models.AgentLog)
	for _, entry := range logs {
		byAgent[entry.AgentName] = entry
	}

	treasurer := byAgent["treasurer"]
	assert.Equal(t, models.SeverityCritical, treasurer.Severity)
	assert.Contains(t, treasurer.Result, "runway")

	quartermaster := byAgent["quartermaster"]
	assert.Equal(t, models.SeverityCritical, quartermaster.Severity)
	assert.Contains(t, quartermaster.Result, "1 critical")
}
