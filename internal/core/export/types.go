// Package export renders transaction and inventory reports as downloadable
// XLSX or PDF files.
package export

import (
	"io"
	"time"
)

// Format selects the output file format.
type Format string

const (
	FormatExcel Format = "xlsx"
	FormatPDF   Format = "pdf"
)

// Report is a flat table plus captions, the unit every exporter renders.
type Report struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Headers     []string
	Rows        [][]interface{}
}

// Exporter renders a report into a writer.
type Exporter interface {
	Render(report *Report, w io.Writer) error
	ContentType() string
	FileExtension() string
}
