package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Metric is one label/value pair of a report summary.
type Metric struct {
	Label string
	Value string
}

// ReportDocument carries the content of a performance report PDF.
type ReportDocument struct {
	Title    string
	Scope    string
	Summary  []Metric
	Rankings []DepartmentRow
	Insights []string
}

// ReportPDF lays out a performance report: headline metrics, the department
// ranking table, and the generated insight lines.
func ReportPDF(doc ReportDocument) ([]byte, error) {
	if len(doc.Summary) == 0 {
		return nil, fmt.Errorf("report has no summary metrics")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, strings.ToUpper(doc.Title), "", 1, "C", false, 0, "")
	if doc.Scope != "" {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 6, "Scope: "+doc.Scope, "", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(95, 8, "Metric", "1", 0, "C", false, 0, "")
	pdf.CellFormat(95, 8, "Value", "1", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, m := range doc.Summary {
		pdf.CellFormat(95, 7, m.Label, "1", 0, "", false, 0, "")
		pdf.CellFormat(95, 7, m.Value, "1", 1, "", false, 0, "")
	}

	if len(doc.Rankings) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, "Top Departments", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(95, 8, "Department", "1", 0, "C", false, 0, "")
		pdf.CellFormat(47.5, 8, "Exams", "1", 0, "C", false, 0, "")
		pdf.CellFormat(47.5, 8, "Pass Rate", "1", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, r := range doc.Rankings {
			pdf.CellFormat(95, 7, r.Department, "1", 0, "", false, 0, "")
			pdf.CellFormat(47.5, 7, fmt.Sprintf("%d", r.Exams), "1", 0, "R", false, 0, "")
			pdf.CellFormat(47.5, 7, fmt.Sprintf("%.2f%%", r.PassRate), "1", 1, "R", false, 0, "")
		}
	}

	if len(doc.Insights) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, "Key Insights", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, line := range doc.Insights {
			pdf.MultiCell(0, 6, "- "+line, "", "", false)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
