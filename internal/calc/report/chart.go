package report

import (
	"fmt"
	"math"
	"strconv"

	"Seismo/internal/calc/drift"

	"github.com/phpdave11/gofpdf"
)

// Box is a page area in the document's unit (mm).
type Box struct {
	X, Y, W, H float64
}

const gridLines = 5

// ScaleMax is the top of the drift axis: the largest finite drift or the
// limit, whichever is bigger, plus headroom.
func ScaleMax(results []drift.FloorResult, limit float64) float64 {
	top := limit
	for _, r := range results {
		if !math.IsInf(r.Drift, 0) && !math.IsNaN(r.Drift) && r.Drift > top {
			top = r.Drift
		}
	}
	if top <= 0 {
		top = drift.DefaultLimit
	}
	return top * 1.2
}

// DrawChart draws a bar chart of drift per floor with a dashed limit line.
// Infinite drifts are clipped to the top of the plot and labelled "inf";
// negative drifts are drawn as empty slots.
func DrawChart(pdf *gofpdf.Fpdf, box Box, results []drift.FloorResult, limit float64) {
	left := box.X + 20
	right := box.X + box.W - 4
	top := box.Y + 10
	bottom := box.Y + box.H - 14
	plotW := right - left
	plotH := bottom - top
	yMax := ScaleMax(results, limit)
	yOf := func(v float64) float64 {
		return bottom - v/yMax*plotH
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 11)
	title := "Drift per floor"
	pdf.Text(box.X+(box.W-pdf.GetStringWidth(title))/2, box.Y+5, title)

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetLineWidth(0.1)
	pdf.SetDrawColor(190, 190, 190)
	pdf.SetDashPattern([]float64{1, 1}, 0)
	for i := 0; i <= gridLines; i++ {
		v := yMax * float64(i) / gridLines
		y := yOf(v)
		pdf.Line(left, y, right, y)
		label := fmt.Sprintf("%.4f", v)
		pdf.Text(left-1.5-pdf.GetStringWidth(label), y+1, label)
	}
	pdf.SetDashPattern([]float64{}, 0)

	if n := len(results); n > 0 {
		slot := plotW / float64(n)
		barW := slot * 0.6
		pdf.SetLineWidth(0.2)
		for i, r := range results {
			x := left + slot*float64(i) + (slot-barW)/2
			v := r.Drift
			clipped := math.IsInf(v, 1)
			if clipped {
				v = yMax
			}
			if v > 0 {
				pdf.SetFillColor(0x72, 0x89, 0xda)
				pdf.SetDrawColor(0, 0, 0)
				pdf.Rect(x, yOf(v), barW, bottom-yOf(v), "FD")
			}
			if clipped {
				pdf.Text(x+(barW-pdf.GetStringWidth("inf"))/2, top-1, "inf")
			}
			name := r.Name()
			pdf.Text(x+(barW-pdf.GetStringWidth(name))/2, bottom+4, name)
		}
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Line(left, top, left, bottom)
	pdf.Line(left, bottom, right, bottom)

	limitY := yOf(limit)
	pdf.SetDrawColor(220, 0, 0)
	pdf.SetLineWidth(0.4)
	pdf.SetDashPattern([]float64{2, 1.5}, 0)
	pdf.Line(left, limitY, right, limitY)
	pdf.SetDashPattern([]float64{}, 0)

	legend := "Allowed limit (" + strconv.FormatFloat(limit, 'f', -1, 64) + ")"
	lx := right - pdf.GetStringWidth(legend) - 10
	ly := top + 3
	pdf.Line(lx, ly-1, lx+6, ly-1)
	pdf.Text(lx+8, ly, legend)

	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(left+(plotW-pdf.GetStringWidth("Floor"))/2, bottom+10, "Floor")
	axis := "Drift (m)"
	ax := box.X + 4
	ay := top + (plotH+pdf.GetStringWidth(axis))/2
	pdf.TransformBegin()
	pdf.TransformRotate(90, ax, ay)
	pdf.Text(ax, ay, axis)
	pdf.TransformEnd()
}
