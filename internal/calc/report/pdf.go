package report

import (
	"fmt"
	"io"
	"time"

	"Seismo/internal/calc/drift"
	"Seismo/internal/calc/recommend"

	"github.com/phpdave11/gofpdf"
)

const chartHeight = 80.0

type Document struct {
	Title     string
	Project   string
	Author    string
	Notes     string
	Generated time.Time
	Results   []drift.FloorResult
	Summary   drift.Summary
	Advice    []recommend.StiffnessAdvice
}

// PDF writes the technical report: header, results table, chart, summary
// and observations.
func PDF(w io.Writer, doc Document) error {
	if doc.Title == "" {
		doc.Title = "Seismic Drift Technical Report"
	}
	if doc.Generated.IsZero() {
		doc.Generated = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, false)
	pdf.SetAuthor(doc.Author, false)
	pdf.AddPage()
	left, _, right, _ := pdf.GetMargins()
	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - left - right

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, doc.Title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	if doc.Project != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Project: %s", doc.Project))
		pdf.Ln(6)
	}
	if doc.Author != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Author: %s", doc.Author))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", doc.Generated.Format("02/01/2006 15:04:05")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Allowed drift limit: %s m", FormatDrift(doc.Summary.Limit)))
	pdf.Ln(10)

	colW := []float64{30, 50, 40}
	tableX := left + (contentW-(colW[0]+colW[1]+colW[2]))/2
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(211, 211, 211)
	pdf.SetX(tableX)
	for i, h := range []string{"Floor", "Drift (m)", "Evaluation"} {
		pdf.CellFormat(colW[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range doc.Results {
		pdf.SetX(tableX)
		pdf.CellFormat(colW[0], 6, r.Name(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[1], 6, FormatDrift(r.Drift), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[2], 6, Status(r), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	_, _, _, bottomMargin := pdf.GetMargins()
	if pdf.GetY()+chartHeight+10 > pageH-bottomMargin {
		pdf.AddPage()
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 6, "Drift chart:")
	pdf.Ln(8)
	y := pdf.GetY()
	DrawChart(pdf, Box{X: left, Y: y, W: contentW, H: chartHeight}, doc.Results, doc.Summary.Limit)
	pdf.SetY(y + chartHeight + 6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 6, "Summary:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, Verdict(doc.Summary)+" "+MaxLine(doc.Summary)+".", "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 6, "Observations:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	for _, o := range Observations(doc.Summary) {
		pdf.MultiCell(0, 6, "- "+o, "", "L", false)
	}
	for _, a := range doc.Advice {
		pdf.MultiCell(0, 6, "- "+AdviceLine(a), "", "L", false)
	}
	if doc.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 6, "Notes:")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, doc.Notes, "", "L", false)
	}
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Generated automatically by the Seismo drift analysis system")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return pdf.Output(w)
}

func AdviceLine(a recommend.StiffnessAdvice) string {
	name := a.Label
	if name == "" {
		name = fmt.Sprintf("%d", a.Floor)
	}
	if a.Increase > 0 {
		return fmt.Sprintf("Floor %s: raise stiffness to at least %.0f N/m (x%.2f).", name, a.RequiredStiffness, a.Increase)
	}
	return fmt.Sprintf("Floor %s: provide at least %.0f N/m. %s", name, a.RequiredStiffness, a.Notes)
}
