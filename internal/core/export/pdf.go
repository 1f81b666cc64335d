package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders reports as portrait A4 PDF tables.
type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

func (p *PDFExporter) ContentType() string {
	return "application/pdf"
}

func (p *PDFExporter) FileExtension() string {
	return ".pdf"
}

func (p *PDFExporter) Render(report *Report, w io.Writer) error {
	if len(report.Headers) == 0 {
		return fmt.Errorf("report has no headers")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, report.Title)
	pdf.Ln(12)

	if report.Subtitle != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, report.Subtitle, "", "", false)
		pdf.Ln(4)
	}
	if !report.GeneratedAt.IsZero() {
		pdf.SetFont("Arial", "I", 8)
		pdf.Cell(0, 5, "Generated: "+report.GeneratedAt.Format("2006-01-02 15:04"))
		pdf.Ln(10)
	}

	pageWidth, _ := pdf.GetPageSize()
	leftMargin, _, rightMargin, _ := pdf.GetMargins()
	colWidth := (pageWidth - leftMargin - rightMargin) / float64(len(report.Headers))

	p.drawHeader(pdf, report.Headers, colWidth)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 9)

	for _, row := range report.Rows {
		for _, value := range row {
			pdf.CellFormat(colWidth, 6, fmt.Sprintf("%v", value), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		// A4 body ends around y=270
		if pdf.GetY() > 270 {
			pdf.AddPage()
			p.drawHeader(pdf, report.Headers, colWidth)
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont("Arial", "", 9)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (p *PDFExporter) drawHeader(pdf *gofpdf.Fpdf, headers []string, colWidth float64) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	for _, header := range headers {
		pdf.CellFormat(colWidth, 7, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}
