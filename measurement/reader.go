package measurement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	// Columns in a measurement source: time, voltage, current.
	columnCount = 3
	minRows     = 2
)

// ReadFile reads a measurement from a .csv or .xlsx file. The first row is
// a header and is skipped, every following row must hold exactly three
// numeric columns: time, voltage and current.
func ReadFile(path string) (*Series, error) {
	var (
		s   *Series
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		s, err = readCSVFile(path)
	case ".xlsx":
		s, err = ReadXLSX(path)
	default:
		err = &InputFormatError{Reason: "data input file must be a .csv or .xlsx file"}
	}

	var formatErr *InputFormatError
	if errors.As(err, &formatErr) && formatErr.Path == "" {
		formatErr.Path = path
	}
	return s, err
}

func readCSVFile(path string) (*Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &InputFormatError{Reason: "failed to open file", Err: err}
	}
	defer file.Close()
	return ReadCSV(file)
}

// ReadCSV reads a measurement in CSV form from r.
func ReadCSV(r io.Reader) (*Series, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &InputFormatError{Reason: "failed to read csv", Err: err}
	}
	return parseRows(rows)
}

// ReadXLSX reads a measurement from the first sheet of an Excel workbook.
func ReadXLSX(path string) (*Series, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &InputFormatError{Reason: "failed to open workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &InputFormatError{Reason: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &InputFormatError{Reason: fmt.Sprintf("failed to read sheet %q", sheets[0]), Err: err}
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) (*Series, error) {
	if len(rows) == 0 {
		return nil, &InputFormatError{Reason: "input is empty"}
	}

	s := &Series{}
	// rows[0] is the header.
	for i, record := range rows[1:] {
		row := i + 2
		if isBlank(record) {
			continue
		}
		if len(record) < columnCount {
			return nil, &InputFormatError{Row: row, Reason: fmt.Sprintf("input data size too small (%d columns), is data missing?", len(record))}
		}
		if len(record) > columnCount {
			return nil, &InputFormatError{Row: row, Reason: fmt.Sprintf("input data size too big (%d columns), expected time, voltage and current", len(record))}
		}

		var values [columnCount]float64
		for col, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, &InputFormatError{Row: row, Column: col + 1, Reason: fmt.Sprintf("%q is not a number", field)}
			}
			values[col] = v
		}
		s.Time = append(s.Time, values[0])
		s.Voltage = append(s.Voltage, values[1])
		s.Current = append(s.Current, values[2])
	}

	if s.Len() < minRows {
		return nil, &InputFormatError{Reason: fmt.Sprintf("found %d data rows, at least %d are needed", s.Len(), minRows)}
	}
	return s, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
