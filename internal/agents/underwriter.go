package agents

import (
	"math"
	"sort"

	"github.com/spivot-ai/spivot-backend/internal/models"
)

// Underwriter generates the Spivot Score, a 300-900 creditworthiness index
// weighted across cash consistency, revenue growth and vendor payment
// history.
type Underwriter struct{}

// Score weights and range
const (
	weightCashConsistency = 0.4
	weightRevenueGrowth   = 0.3
	weightVendorPayment   = 0.3

	minScore = 300
	maxScore = 900
)

// NewUnderwriter creates an Underwriter.
func NewUnderwriter() *Underwriter {
	return &Underwriter{}
}

// GenerateScore computes the weighted score from its three components.
// cashConsistency and vendorPaymentHistory are 0-100; revenueGrowth is a
// percentage where -50%..+50% maps onto the 0-100 scale.
func (u *Underwriter) GenerateScore(cashConsistency, revenueGrowth, vendorPaymentHistory float64) SpivotScore {
	cashScore := clamp(cashConsistency, 0, 100)
	growthNormalized := clamp(revenueGrowth+50, 0, 100)
	vendorScore := clamp(vendorPaymentHistory, 0, 100)

	weighted := cashScore*weightCashConsistency +
		growthNormalized*weightRevenueGrowth +
		vendorScore*weightVendorPayment

	score := minScore + int(weighted/100*(maxScore-minScore))
	if score < minScore {
		score = minScore
	}
	if score > maxScore {
		score = maxScore
	}

	riskLevel := "high"
	switch {
	case score >= 750:
		riskLevel = "low"
	case score >= 600:
		riskLevel = "medium"
	}

	return SpivotScore{
		Score:                score,
		CashConsistency:      round2(cashScore),
		RevenueGrowth:        round2(revenueGrowth),
		VendorPaymentHistory: round2(vendorScore),
		RiskLevel:            riskLevel,
	}
}

// ScoreFromTransactions derives the score components from a transaction
// snapshot: credit variance drives consistency, older-vs-recent credit
// halves drive growth, and vendor history defaults to 80 until payment
// records exist.
func (u *Underwriter) ScoreFromTransactions(transactions []models.Transaction) SpivotScore {
	cashConsistency := 50.0
	var credits []float64
	for _, tx := range transactions {
		if tx.Type == models.TransactionCredit {
			credits = append(credits, tx.Amount)
		}
	}

	if len(credits) > 0 {
		var sum float64
		for _, c := range credits {
			sum += c
		}
		avg := sum / float64(len(credits))

		if avg > 0 {
			var variance float64
			for _, c := range credits {
				variance += (c - avg) * (c - avg)
			}
			variance /= float64(len(credits))
			stdDev := math.Sqrt(variance)
			cashConsistency = math.Max(0, 100-(stdDev/avg*100))
		}
	}

	revenueGrowth := 0.0
	if len(transactions) >= 2 {
		// Repositories list transactions newest-first; order by date here so
		// the first half really is the older one.
		ordered := make([]models.Transaction, len(transactions))
		copy(ordered, transactions)
		sort.Slice(ordered, func(i, j int) bool {
			return ordered[i].Date.Before(ordered[j].Date)
		})

		mid := len(ordered) / 2
		var olderCredits, recentCredits float64
		for i, tx := range ordered {
			if tx.Type != models.TransactionCredit {
				continue
			}
			if i < mid {
				olderCredits += tx.Amount
			} else {
				recentCredits += tx.Amount
			}
		}
		if olderCredits > 0 {
			revenueGrowth = (recentCredits - olderCredits) / olderCredits * 100
		}
	}

	return u.GenerateScore(cashConsistency, revenueGrowth, 80)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
