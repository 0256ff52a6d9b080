package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"Seismo/internal/calc/drift"
	"Seismo/internal/calc/importer"
	"Seismo/internal/calc/recommend"
	"Seismo/internal/calc/report"

	"github.com/spf13/cobra"
)

type evaluateOpts struct {
	input   string
	floors  []string
	limit   float64
	pdf     string
	xlsx    string
	project string
	author  string
}

func newEvaluateCmd() *cobra.Command {
	var o evaluateOpts
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate floor drifts and print the report",
		Long: `Evaluate reads mass, stiffness and seismic force per floor and prints the
drift report. Floors come from an .xlsx sheet (--input), from repeated
--floor M,K,F[,label] flags, or are asked for on stdin.`,
		Example: `  seismo evaluate --floor 20000,8000000,4000 --floor 20000,8000000,50000
  seismo evaluate --input floors.xlsx --pdf Informe_Sismico.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, o)
		},
	}
	cmd.Flags().StringVarP(&o.input, "input", "i", "", "xlsx file with mass, stiffness, force columns")
	cmd.Flags().StringArrayVarP(&o.floors, "floor", "f", nil, "floor as mass,stiffness,force[,label] (repeatable)")
	cmd.Flags().Float64Var(&o.limit, "limit", drift.DefaultLimit, "drift limit in meters")
	cmd.Flags().StringVar(&o.pdf, "pdf", "", "write the PDF report to this path")
	cmd.Flags().StringVar(&o.xlsx, "xlsx", "", "write the results workbook to this path")
	cmd.Flags().StringVar(&o.project, "project", "", "project name for the PDF report")
	cmd.Flags().StringVar(&o.author, "author", "", "author for the PDF report")
	return cmd
}

func runEvaluate(cmd *cobra.Command, o evaluateOpts) error {
	if err := drift.CheckLimit(o.limit); err != nil {
		return fmt.Errorf("--limit: %w", err)
	}
	rows, err := collect(cmd, o)
	if err != nil {
		return err
	}
	floors, err := drift.ParseFloors(rows)
	if err != nil {
		return err
	}

	results, sum := drift.Evaluate(floors, o.limit)
	advice, err := recommend.Stiffness(floors, results, o.limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, renderReport(results, sum, advice))

	if o.pdf != "" {
		doc := report.Document{
			Project:   o.project,
			Author:    o.author,
			Generated: time.Now(),
			Results:   results,
			Summary:   sum,
			Advice:    advice,
		}
		err := report.WriteFile(o.pdf, func(w io.Writer) error { return report.PDF(w, doc) })
		if err != nil {
			return fmt.Errorf("pdf report: %w", err)
		}
		fmt.Fprintf(out, "PDF report written to %s\n", o.pdf)
	}
	if o.xlsx != "" {
		err := report.WriteFile(o.xlsx, func(w io.Writer) error { return report.XLSX(w, results, sum) })
		if err != nil {
			return fmt.Errorf("xlsx report: %w", err)
		}
		fmt.Fprintf(out, "Workbook written to %s\n", o.xlsx)
	}
	return nil
}

func collect(cmd *cobra.Command, o evaluateOpts) ([]drift.FloorFields, error) {
	switch {
	case o.input != "" && len(o.floors) > 0:
		return nil, fmt.Errorf("use either --input or --floor, not both")
	case o.input != "":
		f, err := os.Open(o.input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return importer.ReadFloors(f)
	case len(o.floors) > 0:
		return splitFloors(o.floors), nil
	default:
		return prompt(cmd.InOrStdin(), cmd.ErrOrStderr())
	}
}

func splitFloors(specs []string) []drift.FloorFields {
	rows := make([]drift.FloorFields, 0, len(specs))
	for _, s := range specs {
		parts := strings.SplitN(s, ",", 4)
		for len(parts) < 4 {
			parts = append(parts, "")
		}
		rows = append(rows, drift.FloorFields{Mass: parts[0], Stiffness: parts[1], Force: parts[2], Label: parts[3]})
	}
	return rows
}

// prompt asks for the number of floors and then for each floor's values.
func prompt(in io.Reader, out io.Writer) ([]drift.FloorFields, error) {
	sc := bufio.NewScanner(in)
	ask := func(q string) (string, error) {
		fmt.Fprint(out, q)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return sc.Text(), nil
	}

	answer, err := ask("Number of floors: ")
	if err != nil {
		return nil, err
	}
	n, err := drift.ParseFloorCount(answer)
	if err != nil {
		return nil, err
	}

	rows := make([]drift.FloorFields, 0, n)
	for i := 1; i <= n; i++ {
		var row drift.FloorFields
		if row.Mass, err = ask(fmt.Sprintf("Floor %d mass (kg): ", i)); err != nil {
			return nil, err
		}
		if row.Stiffness, err = ask(fmt.Sprintf("Floor %d stiffness (N/m): ", i)); err != nil {
			return nil, err
		}
		if row.Force, err = ask(fmt.Sprintf("Floor %d seismic force (N): ", i)); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
