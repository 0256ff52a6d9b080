package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"Seismo/internal/calc/drift"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEvaluate_FloorFlags(t *testing.T) {
	out, err := run(t, "", "evaluate", "--floor", "20000,8000000,4000", "--floor", "20000,8000000,50000,Roof")
	require.NoError(t, err)

	assert.Contains(t, out, "Floors analysed: 2")
	assert.Contains(t, out, "Roof")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "Maximum drift: 0.006250 m (floor 2)")
	assert.Contains(t, out, "Floor Roof: raise stiffness to at least 10000000 N/m")
}

func TestEvaluate_Prompt(t *testing.T) {
	out, err := run(t, "1\n20000\n8000000\n4000\n", "evaluate")
	require.NoError(t, err)

	assert.Contains(t, out, "Number of floors: ")
	assert.Contains(t, out, "All drifts comply with the allowed limit.")
}

func TestEvaluate_PromptErrors(t *testing.T) {
	_, err := run(t, "0\n", "evaluate")
	assert.ErrorIs(t, err, drift.ErrInvalidFloorCount)

	_, err = run(t, "1\nEj: 20000\n8000000\n4000\n", "evaluate")
	assert.ErrorIs(t, err, drift.ErrNonNumericInput)

	_, err = run(t, "2\n1\n1\n1\n", "evaluate")
	assert.Error(t, err)
}

func TestEvaluate_BadArguments(t *testing.T) {
	_, err := run(t, "", "evaluate", "--floor", "1,abc,1")
	assert.ErrorIs(t, err, drift.ErrNonNumericInput)

	for _, limit := range []string{"0", "-0.005", "Inf", "NaN"} {
		out, err := run(t, "", "evaluate", "--limit", limit, "--floor", "20000,0,100")
		assert.ErrorIs(t, err, drift.ErrInvalidLimit, "limit %s", limit)
		assert.NotContains(t, out, "PASS")
	}

	_, err = run(t, "", "evaluate", "--input", "x.xlsx", "--floor", "1,1,1")
	assert.ErrorContains(t, err, "not both")
}

func TestEvaluate_InputAndOutputs(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "floors.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Mass", "Stiffness", "Force"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{20000, 0, 100}))
	require.NoError(t, f.SaveAs(input))
	require.NoError(t, f.Close())

	pdfPath := filepath.Join(dir, "Informe_Sismico.pdf")
	xlsxPath := filepath.Join(dir, "results.xlsx")
	out, err := run(t, "", "evaluate", "--input", input, "--pdf", pdfPath, "--xlsx", xlsxPath, "--project", "Block A")
	require.NoError(t, err)

	assert.Contains(t, out, "+Inf")
	assert.Contains(t, out, "PDF report written to")
	pdf, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	_, err = os.Stat(xlsxPath)
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "seismo dev (none)\n", out)
}
