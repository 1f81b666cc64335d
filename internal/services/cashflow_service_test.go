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

func newCashflowFixture() (*CashflowService, *fakeTransactionRepo) {
	repo := &fakeTransactionRepo{}
	return NewCashflowService(repo, agents.NewTreasurer(), nil), repo
}

func TestCreateTransaction_Validation(t *testing.T) {
	svc, _ := newCashflowFixture()
	userID := uuid.New()

	tests := []struct {
		name    string
		req     models.CreateTransactionRequest
		wantErr bool
	}{
		{"valid credit", models.CreateTransactionRequest{Amount: 100, Type: "credit"}, false},
		{"valid debit", models.CreateTransactionRequest{Amount: 50, Type: "debit", Category: "rent"}, false},
		{"zero amount", models.CreateTransactionRequest{Amount: 0, Type: "credit"}, true},
		{"negative amount", models.CreateTransactionRequest{Amount: -10, Type: "debit"}, true},
		{"unknown type", models.CreateTransactionRequest{Amount: 10, Type: "transfer"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTransaction(userID, &tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateTransaction_Defaults(t *testing.T) {
	svc, _ := newCashflowFixture()

	tx, err := svc.CreateTransaction(uuid.New(), &models.CreateTransactionRequest{Amount: 100, Type: "credit"})
	require.NoError(t, err)

	assert.Equal(t, "uncategorized", tx.Category)
	assert.WithinDuration(t, time.Now(), tx.Date, time.Minute)
}

func TestAnalyze_ReducesUserHistory(t *testing.T) {
	svc, repo := newCashflowFixture()
	userID := uuid.New()

	for _, tx := range []models.Transaction{
		{UserID: userID, Date: time.Now(), Amount: 85000, Type: models.TransactionCredit},
		{UserID: userID, Date: time.Now(), Amount: 125000, Type: models.TransactionDebit},
		{UserID: userID, Date: time.Now(), Amount: 280000, Type: models.TransactionDebit},
		// Another user's transaction must not leak into the analysis
		{UserID: uuid.New(), Date: time.Now(), Amount: 999999, Type: models.TransactionCredit},
	} {
		txCopy := tx
		require.NoError(t, repo.Create(&txCopy))
	}

	analysis, err := svc.Analyze(userID)
	require.NoError(t, err)

	assert.Equal(t, 85000.0, analysis.MonthlyInflow)
	assert.Equal(t, 405000.0, analysis.MonthlyOutflow)
	assert.Equal(t, -320000.0, analysis.CurrentBalance)
	assert.Equal(t, 13500.0, analysis.BurnRate)
	assert.Equal(t, -24, analysis.CashRunwayDays)
	assert.Equal(t, agents.AlertCritical, analysis.AlertLevel)
}

func TestProjectBalance_DefaultsHorizon(t *testing.T) {
	svc, repo := newCashflowFixture()
	userID := uuid.New()
	require.NoError(t, repo.Create(&models.Transaction{UserID: userID, Date: time.Now(), Amount: 3000, Type: models.TransactionDebit}))

	points, err := svc.ProjectBalance(userID, 0)
	require.NoError(t, err)
	assert.Len(t, points, 30)
}
