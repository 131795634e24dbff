package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"capitas-dashboard/internal/model"
	"capitas-dashboard/pkg/utils"
)

// ReadError reports a raw file that is missing, empty, or unparsable as
// tabular data. It aborts the cleaning run for its institution only.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read raw file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// IsReadError reports whether err is (or wraps) a ReadError.
func IsReadError(err error) bool {
	var re *ReadError
	return errors.As(err, &re)
}

// ReadTable reads one institutional export into a RawTable. Excel files are
// read via excelize, everything else is attempted as CSV, matching how the
// source institutions publish the same series in either format. No cell is
// transformed here beyond sheet/row/column extraction.
func ReadTable(path, institution string) (*model.RawTable, error) {
	var rows [][]string
	var err error

	switch utils.FileType(path) {
	case "excel":
		rows, err = readExcel(path)
	case "csv":
		rows, err = readCSV(path)
	default:
		// The institutions occasionally publish CSVs with odd extensions.
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	table := &model.RawTable{
		Institution: institution,
		SourcePath:  path,
		Rows:        rows,
	}
	if table.Empty() {
		return nil, &ReadError{Path: path, Err: errors.New("file contains no data")}
	}
	return table, nil
}

// readExcel extracts the first sheet of a workbook as a string grid.
func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // institutional exports have ragged rows

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}
