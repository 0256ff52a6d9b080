package report

import (
	"fmt"
	"io"
	"math"

	"Seismo/internal/calc/drift"

	"github.com/xuri/excelize/v2"
)

const Sheet = "Drift"

// XLSX writes the per-floor results and the summary to a workbook.
func XLSX(w io.Writer, results []drift.FloorResult, s drift.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", Sheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(Sheet, "A1", &[]any{"Floor", "Drift (m)", "Evaluation"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(Sheet, "A1", "C1", bold); err != nil {
		return err
	}
	row := 2
	for _, r := range results {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(Sheet, cell, &[]any{r.Name(), cellValue(r.Drift), Status(r)}); err != nil {
			return err
		}
		row++
	}

	row++
	summary := [][]any{
		{"Floors", s.FloorCount},
		{"Limit (m)", s.Limit},
		{"Max drift (m)", cellValue(s.MaxDrift)},
		{"Max drift floor", s.MaxDriftFloor},
		{"Limit exceeded", s.LimitExceeded},
	}
	for _, line := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(Sheet, cell, &line); err != nil {
			return err
		}
		row++
	}
	if err := f.SetColWidth(Sheet, "A", "C", 16); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// non-finite drifts have no numeric cell representation
func cellValue(v float64) any {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return FormatDrift(v)
	}
	return v
}
