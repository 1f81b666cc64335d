package agents

import (
	"math"
	"time"

	"github.com/spivot-ai/spivot-backend/internal/models"
)

// RunwayInfinite is the sentinel runway for a business with no burn.
const RunwayInfinite = 999

// Treasurer monitors liquidity: burn rate, cash runway and alert levels.
type Treasurer struct {
	CriticalRunwayDays int
	WarningRunwayDays  int
}

// NewTreasurer creates a Treasurer with the default alert thresholds.
func NewTreasurer() *Treasurer {
	return &Treasurer{
		CriticalRunwayDays: 20,
		WarningRunwayDays:  45,
	}
}

// AnalyzeCashflow reduces a transaction snapshot into cashflow indicators.
//
// Inflow is the sum of credit amounts, outflow the sum of debit amounts,
// balance their difference. Burn rate is the daily average outflow over a
// fixed 30-day window, not a rolling calendar month. Runway is
// floor(balance/burn) when burn is positive, RunwayInfinite otherwise.
// A negative balance with positive burn yields a negative runway; callers
// must read that as "already exhausted", it is deliberately not clamped.
func (t *Treasurer) AnalyzeCashflow(transactions []models.Transaction) CashflowAnalysis {
	var inflow, outflow float64
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionCredit:
			inflow += tx.Amount
		case models.TransactionDebit:
			outflow += tx.Amount
		}
	}

	balance := inflow - outflow
	burnRate := outflow / 30

	runway := RunwayInfinite
	if burnRate > 0 {
		runway = int(math.Floor(balance / burnRate))
	}

	return CashflowAnalysis{
		MonthlyInflow:  inflow,
		MonthlyOutflow: outflow,
		CurrentBalance: balance,
		BurnRate:       burnRate,
		CashRunwayDays: runway,
		AlertLevel:     t.alertLevel(runway),
	}
}

func (t *Treasurer) alertLevel(runwayDays int) AlertLevel {
	switch {
	case runwayDays < t.CriticalRunwayDays:
		return AlertCritical
	case runwayDays < t.WarningRunwayDays:
		return AlertWarning
	default:
		return AlertNormal
	}
}

// ProjectBalance projects the balance day by day at the current burn rate.
// The projection floors at zero: it feeds a chart, not the runway math.
func (t *Treasurer) ProjectBalance(currentBalance, burnRate float64, days int) []BalancePoint {
	points := make([]BalancePoint, 0, days)
	balance := currentBalance
	now := time.Now()

	for day := 1; day <= days; day++ {
		balance -= burnRate
		points = append(points, BalancePoint{
			Day:              day,
			Date:             now.AddDate(0, 0, day).Format("2006-01-02"),
			ProjectedBalance: math.Max(0, balance),
		})
	}

	return points
}
