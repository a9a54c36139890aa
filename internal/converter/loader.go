package converter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/bakery-order-report/internal/config"
	"github.com/ginjaninja78/bakery-order-report/internal/csvparser"
	"github.com/ginjaninja78/bakery-order-report/internal/types"
	"github.com/ginjaninja78/bakery-order-report/internal/xlsxparser"
)

// ErrUnsupportedFormat is returned for uploads that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// LoadTable reads an uploaded order sheet, choosing the parser by extension.
// sheet selects the worksheet of a workbook and is ignored for CSV.
func LoadTable(path string, sheet string, settings config.CSVSettings) (*types.RawTable, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		table *types.RawTable
		err   error
	)
	switch ext {
	case ".csv", ".txt":
		table, err = csvparser.ParseFile(path, settings)
	case ".xlsx", ".xlsm":
		table, err = xlsxparser.ParseSheetFile(path, sheet)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
	}

	return table, nil
}
