package report

import (
	"fmt"
	"strings"

	"Seismo/internal/calc/drift"
)

const rule = "-----------------------------------------------"

// Status is the pass/fail marker of a floor.
func Status(r drift.FloorResult) string {
	if r.Compliant {
		return "PASS"
	}
	return "FAIL"
}

// Verdict is the one-line conclusion of an evaluation.
func Verdict(s drift.Summary) string {
	if s.LimitExceeded {
		return "Drifts above the allowed limit were detected."
	}
	return "All drifts comply with the allowed limit."
}

// Observations are the recommendations printed under the summary.
func Observations(s drift.Summary) []string {
	if s.LimitExceeded {
		return []string{
			"Review the structural design.",
			"Increase lateral stiffness or improve the mass distribution.",
		}
	}
	return []string{
		"The structure meets the drift criteria.",
		"No structural modification is required.",
	}
}

// MaxLine describes the largest drift, or says there is none.
func MaxLine(s drift.Summary) string {
	if s.MaxDriftFloor == 0 {
		return "Maximum drift: n/a (no floors)"
	}
	return fmt.Sprintf("Maximum drift: %s m (floor %d)", FormatDrift(s.MaxDrift), s.MaxDriftFloor)
}

func FormatDrift(d float64) string {
	return fmt.Sprintf("%.6f", d)
}

// Text renders the on-screen technical report.
func Text(results []drift.FloorResult, s drift.Summary) string {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("        SEISMIC DRIFT TECHNICAL REPORT\n")
	b.WriteString(rule + "\n\n")

	b.WriteString("GENERAL DATA:\n")
	fmt.Fprintf(&b, "- Floors analysed: %d\n", s.FloorCount)
	fmt.Fprintf(&b, "- Allowed drift limit: %s m\n\n", FormatDrift(s.Limit))

	b.WriteString("RESULTS PER FLOOR:\n")
	b.WriteString(rule + "\n")
	b.WriteString(" Floor |   Drift (m)    |   Evaluation\n")
	b.WriteString(rule + "\n")
	for _, r := range results {
		fmt.Fprintf(&b, "  %-5s|   %-12s |   %s\n", r.Name(), FormatDrift(r.Drift), Status(r))
	}
	b.WriteString(rule + "\n\n")

	b.WriteString("SUMMARY:\n")
	b.WriteString(Verdict(s) + "\n")
	b.WriteString(MaxLine(s) + "\n")
	if s.LimitExceeded {
		fmt.Fprintf(&b, "Regulatory limit: %s m\n", FormatDrift(s.Limit))
	}
	b.WriteString("\nOBSERVATIONS:\n")
	for _, o := range Observations(s) {
		b.WriteString("- " + o + "\n")
	}

	b.WriteString("\n" + rule + "\n")
	b.WriteString("End of technical report.\n")
	b.WriteString(rule + "\n")
	return b.String()
}
