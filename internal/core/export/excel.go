package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

// ExcelExporter renders reports as XLSX workbooks.
type ExcelExporter struct{}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) FileExtension() string {
	return ".xlsx"
}

func (e *ExcelExporter) Render(report *Report, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	row := 1
	if report.Title != "" {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), report.Title)
		titleStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 14},
		})
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), titleStyle)
		row++
	}
	if report.Subtitle != "" {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), report.Subtitle)
		row++
	}
	if !report.GeneratedAt.IsZero() {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Generated: "+report.GeneratedAt.Format("2006-01-02 15:04"))
		row++
	}
	row++

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headerRow := row
	for col, header := range report.Headers {
		cell := columnName(col+1) + strconv.Itoa(row)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	row++

	for _, dataRow := range report.Rows {
		for col, value := range dataRow {
			f.SetCellValue(sheetName, columnName(col+1)+strconv.Itoa(row), value)
		}
		row++
	}

	if len(report.Headers) > 0 {
		f.SetPanes(sheetName, &excelize.Panes{
			Freeze:      true,
			YSplit:      headerRow,
			TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
			ActivePane:  "bottomLeft",
		})
		lastCol := columnName(len(report.Headers))
		f.AutoFilter(sheetName, fmt.Sprintf("A%d:%s%d", headerRow, lastCol, headerRow+len(report.Rows)), nil)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// columnName converts a 1-based column number to its Excel name (1 -> A).
func columnName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+(col%26))) + name
		col /= 26
	}
	return name
}
