package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/csvchat/csvchat-go/internal/domain"
)

// Load parses an uploaded tabular file into a Table. The first row names
// the columns and every following row is data. The format is picked by the
// file extension: CSV plus the xlsx/xlsm workbook formats.
func Load(filename string, r io.Reader) (domain.Table, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = readCSV(r)
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(r)
	default:
		return domain.Table{}, domain.ErrUnsupportedFormat
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("%w: %w", domain.ErrMalformedFile, err)
	}
	if len(rows) == 0 {
		return domain.Table{}, domain.ErrEmptyFile
	}

	table := domain.Table{
		Columns: rows[0],
		Rows:    rows[1:],
	}
	table.NumericCols = numericColumns(table)
	return table, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// numericColumns reports the columns whose every populated cell parses as a
// number. Workbook rows may be shorter than the header; missing cells do
// not disqualify a column.
func numericColumns(t domain.Table) []int {
	var cols []int
	for col := range t.Columns {
		numeric := len(t.Rows) > 0
		for _, row := range t.Rows {
			if col >= len(row) || row[col] == "" {
				continue
			}
			if _, err := strconv.ParseFloat(row[col], 64); err != nil {
				numeric = false
				break
			}
		}
		if numeric {
			cols = append(cols, col)
		}
	}
	return cols
}
