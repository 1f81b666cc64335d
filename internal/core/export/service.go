package export

import (
	"fmt"
	"io"
	"time"

	"github.com/spivot-ai/spivot-backend/internal/agents"
	"github.com/spivot-ai/spivot-backend/internal/models"
)

// Service builds domain reports and renders them in the requested format.
type Service struct {
	exporters map[Format]Exporter
}

// NewService creates an export service with the XLSX and PDF renderers.
func NewService() *Service {
	return &Service{
		exporters: map[Format]Exporter{
			FormatExcel: NewExcelExporter(),
			FormatPDF:   NewPDFExporter(),
		},
	}
}

// Exporter returns the renderer for a format.
func (s *Service) Exporter(format Format) (Exporter, error) {
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
	return exporter, nil
}

// ExportTransactions renders a transaction history report.
func (s *Service) ExportTransactions(format Format, transactions []models.Transaction, w io.Writer) error {
	exporter, err := s.Exporter(format)
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(transactions))
	var totalCredit, totalDebit float64
	for _, tx := range transactions {
		rows = append(rows, []interface{}{
			tx.Date.Format("2006-01-02"),
			string(tx.Type),
			tx.Category,
			tx.Amount,
			tx.Description,
		})
		if tx.Type == models.TransactionCredit {
			totalCredit += tx.Amount
		} else {
			totalDebit += tx.Amount
		}
	}

	report := &Report{
		Title:       "Transaction History",
		Subtitle:    fmt.Sprintf("%d transactions, credits %.2f, debits %.2f", len(transactions), totalCredit, totalDebit),
		GeneratedAt: time.Now(),
		Headers:     []string{"Date", "Type", "Category", "Amount", "Description"},
		Rows:        rows,
	}
	return exporter.Render(report, w)
}

// ExportInventory renders a stock report with derived status per item.
func (s *Service) ExportInventory(format Format, items []models.InventoryItem, w io.Writer) error {
	exporter, err := s.Exporter(format)
	if err != nil {
		return err
	}

	q := agents.NewQuartermaster()
	rows := make([][]interface{}, 0, len(items))
	for _, item := range items {
		rows = append(rows, []interface{}{
			item.SKU,
			item.Name,
			item.Qty,
			item.Unit,
			item.ReorderLevel,
			item.UnitCost,
			item.Value(),
			string(q.StockStatus(item)),
		})
	}

	report := &Report{
		Title:       "Inventory Report",
		Subtitle:    fmt.Sprintf("%d items, total value %.2f", len(items), q.TotalInventoryValue(items)),
		GeneratedAt: time.Now(),
		Headers:     []string{"SKU", "Name", "Qty", "Unit", "Reorder Level", "Unit Cost", "Value", "Status"},
		Rows:        rows,
	}
	return exporter.Render(report, w)
}
