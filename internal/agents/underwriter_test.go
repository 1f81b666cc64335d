package agents

import (
	"testing"
	"time"

	"github.com/spivot-ai/spivot-backend/internal/models"
)

func TestUnderwriter_GenerateScore(t *testing.T) {
	uw := NewUnderwriter()

	tests := []struct {
		name            string
		cashConsistency float64
		revenueGrowth   float64
		vendorHistory   float64
		wantScore       int
		wantRisk        string
	}{
		{
			name:            "perfect inputs hit the ceiling",
			cashConsistency: 100,
			revenueGrowth:   50,
			vendorHistory:   100,
			wantScore:       900,
			wantRisk:        "low",
		},
		{
			name:            "worst inputs hit the floor",
			cashConsistency: 0,
			revenueGrowth:   -50,
			vendorHistory:   0,
			wantScore:       300,
			wantRisk:        "high",
		},
		{
			name:            "default assumptions land mid-range",
			cashConsistency: 50,
			revenueGrowth:   0,
			vendorHistory:   80,
			wantScore:       654,
			wantRisk:        "medium",
		},
		{
			name:            "out-of-range inputs are clamped",
			cashConsistency: 250,
			revenueGrowth:   400,
			vendorHistory:   -20,
			wantScore:       720, // (100*.4 + 100*.3 + 0*.3) = 70 -> 300 + 420
			wantRisk:        "medium",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uw.GenerateScore(tt.cashConsistency, tt.revenueGrowth, tt.vendorHistory)
			if got.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.RiskLevel != tt.wantRisk {
				t.Errorf("RiskLevel = %q, want %q", got.RiskLevel, tt.wantRisk)
			}
		})
	}
}

func TestUnderwriter_ScoreFromTransactions(t *testing.T) {
	uw := NewUnderwriter()

	t.Run("no transactions uses defaults", func(t *testing.T) {
		got := uw.ScoreFromTransactions(nil)
		if got.CashConsistency != 50 {
			t.Errorf("CashConsistency = %v, want 50", got.CashConsistency)
		}
		if got.RevenueGrowth != 0 {
			t.Errorf("RevenueGrowth = %v, want 0", got.RevenueGrowth)
		}
		if got.VendorPaymentHistory != 80 {
			t.Errorf("VendorPaymentHistory = %v, want 80", got.VendorPaymentHistory)
		}
		if got.RiskLevel != "medium" {
			t.Errorf("RiskLevel = %q, want medium", got.RiskLevel)
		}
	})

	t.Run("steady identical credits score full consistency", func(t *testing.T) {
		var transactions []models.Transaction
		for i := 0; i < 6; i++ {
			transactions = append(transactions, models.Transaction{
				Date:   time.Now().AddDate(0, 0, -i),
				Amount: 10000,
				Type:   models.TransactionCredit,
			})
		}
		got := uw.ScoreFromTransactions(transactions)
		if got.CashConsistency != 100 {
			t.Errorf("CashConsistency = %v, want 100", got.CashConsistency)
		}
	})

	t.Run("growing recent credits report positive growth", func(t *testing.T) {
		now := time.Now()
		transactions := []models.Transaction{
			{Date: now.AddDate(0, 0, -21), Amount: 1000, Type: models.TransactionCredit},
			{Date: now.AddDate(0, 0, -14), Amount: 1000, Type: models.TransactionCredit},
			{Date: now.AddDate(0, 0, -7), Amount: 2000, Type: models.TransactionCredit},
			{Date: now, Amount: 2000, Type: models.TransactionCredit},
		}
		got := uw.ScoreFromTransactions(transactions)
		if got.RevenueGrowth != 100 {
			t.Errorf("RevenueGrowth = %v, want 100", got.RevenueGrowth)
		}
	})

	t.Run("growth is computed by date, not input order", func(t *testing.T) {
		// Newest-first, the way repositories hand transactions over.
		now := time.Now()
		transactions := []models.Transaction{
			{Date: now, Amount: 2000, Type: models.TransactionCredit},
			{Date: now.AddDate(0, 0, -7), Amount: 2000, Type: models.TransactionCredit},
			{Date: now.AddDate(0, 0, -14), Amount: 1000, Type: models.TransactionCredit},
			{Date: now.AddDate(0, 0, -21), Amount: 1000, Type: models.TransactionCredit},
		}
		got := uw.ScoreFromTransactions(transactions)
		if got.RevenueGrowth != 100 {
			t.Errorf("RevenueGrowth = %v, want 100", got.RevenueGrowth)
		}
	})

	t.Run("score always inside the 300-900 band", func(t *testing.T) {
		snapshots := [][]models.Transaction{
			nil,
			{{Amount: 1, Type: models.TransactionCredit}},
			{{Amount: 1e9, Type: models.TransactionCredit}, {Amount: 1, Type: models.TransactionCredit}},
		}
		for _, snapshot := range snapshots {
			got := uw.ScoreFromTransactions(snapshot)
			if got.Score < 300 || got.Score > 900 {
				t.Errorf("Score = %d outside band for %d transactions", got.Score, len(snapshot))
			}
		}
	})
}
