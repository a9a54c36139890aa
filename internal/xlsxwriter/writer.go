// =============================================================================
// Bakery Order Report - XLSX Writer Module
// =============================================================================
//
// This module stores the report sheets built by internal/report as an .xlsx
// workbook.
//
// WORKBOOK STRUCTURE:
//   - One worksheet per report.Sheet, in the given order
//   - The first sheet reuses the default "Sheet1" (renamed), so the workbook
//     has no stray empty sheet
//   - Row 1 (the header row) is bold
//   - Numeric cells are stored as numbers, text as shared strings, and empty
//     cells are not written at all
//
// FAILURES:
//   Every failure is reported as ErrExportFailed wrapping the cause.
//   WriteFile never leaves a partial file behind.
//
// =============================================================================

package xlsxwriter

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/bakery-order-report/internal/report"
	"github.com/ginjaninja78/bakery-order-report/internal/types"
	"github.com/ginjaninja78/bakery-order-report/pkg/utils"
)

// ErrExportFailed wraps every error raised while producing a workbook.
var ErrExportFailed = errors.New("export failed")

// defaultSheet is the worksheet excelize creates with a new workbook.
const defaultSheet = "Sheet1"

// =============================================================================
// WRITER FUNCTIONS
// =============================================================================

// WriteFile writes the workbook to path atomically.
//
// PARAMETERS:
//   - path: The destination file. Its directory must exist.
//   - sheets: The report sheets, in workbook order. At least one is required.
//
// RETURNS:
//   - An error wrapping ErrExportFailed. The destination is untouched on failure.
func WriteFile(path string, sheets []report.Sheet) error {
	err := utils.WriteFileAtomic(path, func(w io.Writer) error {
		return Write(w, sheets)
	})
	if err != nil && !errors.Is(err, ErrExportFailed) {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return err
}

// Write encodes the workbook to w.
func Write(w io.Writer, sheets []report.Sheet) error {
	f, err := build(sheets)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: failed to encode workbook: %w", ErrExportFailed, err)
	}
	return nil
}

// build assembles the in-memory workbook.
func build(sheets []report.Sheet) (*excelize.File, error) {
	if len(sheets) == 0 {
		return nil, errors.New("no sheets to write")
	}

	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			err = f.SetSheetName(defaultSheet, sheet.Name)
		} else {
			_, err = f.NewSheet(sheet.Name)
		}
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %q: %w", sheet.Name, err)
		}

		if err := writeRows(f, sheet); err != nil {
			f.Close()
			return nil, err
		}

		if len(sheet.Rows) > 0 {
			if err := f.SetRowStyle(sheet.Name, 1, 1, headerStyle); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to style header of %q: %w", sheet.Name, err)
			}
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// writeRows stores every non-empty cell of sheet.
func writeRows(f *excelize.File, sheet report.Sheet) error {
	for r, row := range sheet.Rows {
		for c, cell := range row {
			if cell.IsEmpty() {
				continue
			}

			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to address cell (%d, %d): %w", r+1, c+1, err)
			}

			if err := f.SetCellValue(sheet.Name, name, cellValue(cell)); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet.Name, name, err)
			}
		}
	}
	return nil
}

// cellValue converts a report cell to the value excelize stores.
func cellValue(cell types.Cell) interface{} {
	if cell.Kind() == types.CellNumber {
		return cell.Number().InexactFloat64()
	}
	return cell.String()
}
