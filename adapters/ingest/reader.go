// Package ingest loads a user-supplied dataset file into the numeric
// sequence the battery consumes. Parse failures abort before any test
// runs; they are dataset-level, not per-test, errors.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"randeval/internal/errors"
)

// Reader handles reading CSV and Excel dataset files
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader for the given file, inferring the format
// from the extension.
func NewReader(filePath string) *Reader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read loads the first numeric column of the file, skipping a header
// row when the first cell does not parse as a number.
func (r *Reader) Read() ([]float64, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.New(errors.CodeIngest, fmt.Sprintf("dataset file not found: %s", r.filePath))
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, errors.New(errors.CodeIngest, fmt.Sprintf("unsupported file type: %s", r.fileType))
	}
}

func (r *Reader) readCSV() ([]float64, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse CSV file")
	}

	rows := make([][]string, 0, len(records))
	rows = append(rows, records...)
	return parseColumn(rows)
}

func (r *Reader) readExcel() ([]float64, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New(errors.CodeIngest, "Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheets[0])
	}
	return parseColumn(rows)
}

// parseColumn extracts the first column as floats. A non-numeric first
// row is treated as a header and skipped; anything non-numeric after
// that is a parse error.
func parseColumn(rows [][]string) ([]float64, error) {
	values := make([]float64, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, errors.New(errors.CodeIngest,
				fmt.Sprintf("row %d: %q is not numeric", i+1, row[0]))
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, errors.New(errors.CodeIngest, "no numeric data found in first column")
	}
	return values, nil
}
