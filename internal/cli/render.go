package cli

import (
	"strings"

	"Seismo/internal/calc/drift"
	"Seismo/internal/calc/recommend"
	"Seismo/internal/calc/report"

	"github.com/charmbracelet/lipgloss"
)

var (
	passStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#43b581"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f04747"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7289da"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#99aab5")).Italic(true)
)

func renderReport(results []drift.FloorResult, s drift.Summary, advice []recommend.StiffnessAdvice) string {
	text := report.Text(results, s)
	text = strings.Replace(text, "SEISMIC DRIFT TECHNICAL REPORT", titleStyle.Render("SEISMIC DRIFT TECHNICAL REPORT"), 1)
	text = strings.ReplaceAll(text, "|   PASS\n", "|   "+passStyle.Render("PASS")+"\n")
	text = strings.ReplaceAll(text, "|   FAIL\n", "|   "+failStyle.Render("FAIL")+"\n")

	verdict := report.Verdict(s)
	if s.LimitExceeded {
		text = strings.Replace(text, verdict, failStyle.Render(verdict), 1)
	} else {
		text = strings.Replace(text, verdict, passStyle.Render(verdict), 1)
	}

	var b strings.Builder
	b.WriteString(text)
	for _, a := range advice {
		b.WriteString(hintStyle.Render(report.AdviceLine(a)) + "\n")
	}
	return b.String()
}
