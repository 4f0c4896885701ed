package calc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TheCacophonyProject/battery-dva/measurement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMeasurement(t *testing.T, dir string, rows int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("time,voltage,current\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%d,%g,-1\n", i, 4.2-0.01*float64(i))
	}
	path := filepath.Join(dir, "Cell 1.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func TestProcArgs(t *testing.T) {
	args, err := procArgs([]string{"cell.csv", "--mode", "ICA", "--parameter", "0.1", "--out", "results"})
	require.NoError(t, err)
	assert.Equal(t, "cell.csv", args.Input)
	assert.Equal(t, "results", args.Out)
	assert.Equal(t, "json", args.Format)
	require.NotNil(t, args.Mode)
	assert.Equal(t, "ICA", *args.Mode)
	require.NotNil(t, args.Parameter)
	assert.Equal(t, 0.1, *args.Parameter)
	assert.Nil(t, args.Method)
	assert.Nil(t, args.OutputSize)
}

func TestProcArgsNeedsInput(t *testing.T) {
	_, err := procArgs([]string{"--mode", "DVA"})
	assert.Error(t, err)
}

func TestRunPrintsSummary(t *testing.T) {
	dir := t.TempDir()
	mode := "DVA"
	args := defaultArgs
	args.Input = writeMeasurement(t, dir, 50)
	args.Mode = &mode

	var stdout bytes.Buffer
	require.NoError(t, run(args, &stdout))
	assert.Contains(t, stdout.String(), "Curve:       DVA (discharge)")
	assert.Contains(t, stdout.String(), "Points:      50")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "nothing is written without --out")
}

func TestRunWritesResult(t *testing.T) {
	dir := t.TempDir()
	mode := "ICA"
	size := 40
	args := defaultArgs
	args.Input = writeMeasurement(t, dir, 50)
	args.Mode = &mode
	args.OutputSize = &size
	args.Out = filepath.Join(dir, "out")
	args.Format = "yaml"

	require.NoError(t, run(args, &bytes.Buffer{}))
	b, err := os.ReadFile(filepath.Join(args.Out, "cell-1.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "mode: ICA")
	assert.Contains(t, string(b), "ICA:")
}

func TestRunInputError(t *testing.T) {
	mode := "DVA"
	args := defaultArgs
	args.Input = filepath.Join(t.TempDir(), "cell.txt")
	args.Mode = &mode

	err := run(args, &bytes.Buffer{})
	assert.ErrorIs(t, err, measurement.ErrInputFormat)
}
