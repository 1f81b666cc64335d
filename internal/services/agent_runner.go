package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/spivot-ai/spivot-backend/internal/agents"
	"github.com/spivot-ai/spivot-backend/internal/models"
	"github.com/spivot-ai/spivot-backend/internal/repositories"
	"github.com/spivot-ai/spivot-backend/internal/shared/logx"
)

// AgentRunner executes the scheduled agent sweep: for every account it runs
// the Treasurer and Quartermaster and records their findings in the action
// feed. Runs are best-effort; one account's failure does not stop the sweep.
type AgentRunner struct {
	userRepo        repositories.UserRepo
	transactionRepo repositories.TransactionRepo
	inventoryRepo   repositories.InventoryRepo
	agentLogRepo    repositories.AgentLogRepo
	treasurer       *agents.Treasurer
	quartermaster   *agents.Quartermaster
}

// NewAgentRunner creates an agent runner.
func NewAgentRunner(
	userRepo repositories.UserRepo,
	transactionRepo repositories.TransactionRepo,
	inventoryRepo repositories.InventoryRepo,
	agentLogRepo repositories.AgentLogRepo,
	treasurer *agents.Treasurer,
	quartermaster *agents.Quartermaster,
) *AgentRunner {
	return &AgentRunner{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		inventoryRepo:   inventoryRepo,
		agentLogRepo:    agentLogRepo,
		treasurer:       treasurer,
		quartermaster:   quartermaster,
	}
}

// RunAll sweeps every account.
func (r *AgentRunner) RunAll() {
	logger := logx.Agent("runner")

	users, err := r.userRepo.ListAll()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list users for agent sweep")
		return
	}

	for _, user := range users {
		if err := r.RunForUser(user.ID); err != nil {
			logger.Error().Str("user_id", user.ID.String()).Err(err).Msg("Agent sweep failed for user")
		}
	}
	logger.Info().Int("users", len(users)).Msg("Agent sweep finished")
}

// RunForUser runs the Treasurer and Quartermaster for one account and logs
// their findings.
func (r *AgentRunner) RunForUser(userID uuid.UUID) error {
	if err := r.runTreasurer(userID); err != nil {
		return err
	}
	return r.runQuartermaster(userID)
}

func (r *AgentRunner) runTreasurer(userID uuid.UUID) error {
	transactions, err := r.transactionRepo.ListByUser(userID, 0)
	if err != nil {
		return fmt.Errorf("treasurer: failed to load transactions: %w", err)
	}

	analysis := r.treasurer.AnalyzeCashflow(transactions)

	severity := models.SeverityInfo
	result := fmt.Sprintf("runway %d days, burn rate %.2f/day", analysis.CashRunwayDays, analysis.BurnRate)
	switch analysis.AlertLevel {
	case agents.AlertCritical:
		severity = models.SeverityCritical
	case agents.AlertWarning:
		severity = models.SeverityWarning
	}

	metadata, _ := json.Marshal(analysis)
	return r.agentLogRepo.Create(&models.AgentLog{
		UserID:    userID,
		AgentName: "treasurer",
		Action:    "cashflow analysis",
		Result:    result,
		Severity:  severity,
		Metadata:  metadata,
	})
}

type lowStockEntry struct {
	SKU    string             `json:"sku"`
	Name   string             `json:"name"`
	Qty    float64            `json:"qty"`
	Status models.StockStatus `json:"status"`
}

func (r *AgentRunner) runQuartermaster(userID uuid.UUID) error {
	items, err := r.inventoryRepo.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("quartermaster: failed to load inventory: %w", err)
	}

	var critical, warning int
	var low []lowStockEntry
	for _, item := range items {
		status := r.quartermaster.StockStatus(item)
		if status == models.StockOK {
			continue
		}
		if status == models.StockCritical {
			critical++
		} else {
			warning++
		}
		low = append(low, lowStockEntry{SKU: item.SKU, Name: item.Name, Qty: item.Qty, Status: status})
	}

	if len(low) == 0 {
		return r.agentLogRepo.Create(&models.AgentLog{
			UserID:    userID,
			AgentName: "quartermaster",
			Action:    "stock review",
			Result:    "all items sufficiently stocked",
			Severity:  models.SeverityInfo,
		})
	}

	severity := models.SeverityWarning
	if critical > 0 {
		severity = models.SeverityCritical
	}

	metadata, _ := json.Marshal(low)
	return r.agentLogRepo.Create(&models.AgentLog{
		UserID:    userID,
		AgentName: "quartermaster",
		Action:    "stock review",
		Result:    fmt.Sprintf("%d critical, %d low stock items", critical, warning),
		Severity:  severity,
		Metadata:  metadata,
	})
}
