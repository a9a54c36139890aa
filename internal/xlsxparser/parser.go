// =============================================================================
// Bakery Order Report - XLSX Order Sheet Parser
// =============================================================================
//
// This module reads an order-form workbook (.xlsx / .xlsm) into a RawTable.
//
// WORKBOOK LAYOUT:
//   Only one worksheet is read, the first one unless a sheet name is given.
//   Its first row holds the column headers and every later row is one order.
//
//   | Column A    | Column B   | Column C | Column D |
//   |-------------|------------|----------|----------|
//   | IG 帳號     | 日期       | 取貨方式 | 餅$30    |
//   | abc         | 2024-01-01 | 面交     | 2        |
//
// CELL VALUES:
//   Cells are read as their *formatted* text, the way the spreadsheet shows
//   them. A date cell therefore arrives as "2024/1/1" (or whatever number
//   format the form uses), which keeps date grouping aligned with what the
//   operator sees.
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/bakery-order-report/internal/types"
)

// ErrNoSheets is returned when a workbook has no worksheet to read.
var ErrNoSheets = errors.New("workbook has no worksheets")

// ErrSheetNotFound is returned when the requested worksheet does not exist.
var ErrSheetNotFound = errors.New("worksheet not found")

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseFile reads the first worksheet of an XLSX file.
func ParseFile(path string) (*types.RawTable, error) {
	return ParseSheetFile(path, "")
}

// ParseSheetFile reads the named worksheet of an XLSX file. An empty sheet
// name selects the first worksheet.
func ParseSheetFile(path string, sheet string) (*types.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	table, err := readSheet(f, sheet)
	if err != nil {
		return nil, err
	}
	table.Source = filepath.Base(path)
	return table, nil
}

// Parse reads the first worksheet of a workbook from r.
//
// PARAMETERS:
//   - r: The workbook bytes (for example an HTTP upload body).
//
// RETURNS:
//   - The parsed table. A worksheet with no rows yields a table with no
//     headers and no rows.
//   - An error if the workbook cannot be opened.
func Parse(r io.Reader) (*types.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return readSheet(f, "")
}

// SheetNames lists the worksheets of an XLSX file in workbook order.
func SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// readSheet converts one worksheet into a RawTable.
func readSheet(f *excelize.File, sheet string) (*types.RawTable, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	if sheet == "" {
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %q: %w", sheet, err)
	}

	if len(rows) == 0 {
		return types.NewRawTable(nil, nil), nil
	}

	// GetRows trims trailing empty cells, so a header cell can only be
	// missing in the middle of the row, where it comes back as "".
	return types.NewRawTable(rows[0], rows[1:]), nil
}
