package output

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	curveSheet   = "Result"
	summarySheet = "Summary"
)

type xlsxWriter struct{}

func (xlsxWriter) Extension() string { return ".xlsx" }

// Write puts the curves as columns on the Result sheet and the run details
// on the Summary sheet. Non finite values are left as empty cells.
func (xlsxWriter) Write(w io.Writer, doc *Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", curveSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	columns := []struct {
		name   string
		values []Float
	}{
		{"time", doc.Time},
		{"Charge", doc.Charge},
		{"SOC", doc.SOC},
		{"DVA", doc.DVA},
		{"DVA_Qnorm", doc.DVAQnorm},
		{"ICA", doc.ICA},
	}
	col := 0
	for _, c := range columns {
		if c.values == nil {
			continue
		}
		col++
		cells := make([]interface{}, 0, len(c.values)+1)
		cells = append(cells, c.name)
		for _, v := range c.values {
			cells = append(cells, cellValue(v))
		}
		cell, err := excelize.CoordinatesToCellName(col, 1)
		if err != nil {
			return err
		}
		if err := f.SetSheetCol(curveSheet, cell, &cells); err != nil {
			return fmt.Errorf("writing column %s: %w", c.name, err)
		}
	}

	summary := [][]interface{}{
		{"run_id", doc.RunID},
		{"source", doc.Source},
		{"created_at", doc.CreatedAt.Format(time.RFC3339)},
		{"mode", string(doc.Mode)},
		{"discharge", doc.Discharge},
		{"noise_lvl", cellValue(doc.NoiseLevel)},
	}
	for _, d := range doc.Diagnostics {
		summary = append(summary, []interface{}{string(d.Severity), d.Message})
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(summarySheet, cell, &r); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func cellValue(v Float) interface{} {
	x := float64(v)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return ""
	}
	return x
}
