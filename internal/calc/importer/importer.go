package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"Seismo/internal/calc/drift"

	"github.com/xuri/excelize/v2"
)

var ErrEmptySheet = errors.New("sheet has no floor rows")

// ReadFloors reads the first sheet of a workbook. The first row is a header;
// columns A..C hold mass, stiffness and force, column D an optional label.
// Blank rows are skipped.
func ReadFloors(r io.Reader) ([]drift.FloorFields, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	var out []drift.FloorFields
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		out = append(out, drift.FloorFields{
			Mass:      col(row, 0),
			Stiffness: col(row, 1),
			Force:     col(row, 2),
			Label:     col(row, 3),
		})
	}
	if len(out) == 0 {
		return nil, ErrEmptySheet
	}
	return out, nil
}

func col(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
