// =============================================================================
// Bakery Order Report - CSV Parser Module
// =============================================================================
//
// This module reads CSV exports of the order form into a RawTable. Order
// forms are exported from several tools, so it handles:
//   - Different delimiters (comma, semicolon, tab, pipe)
//   - Different encodings (UTF-8 with or without BOM, UTF-16, Big5 from
//     Traditional Chinese Excel, or any other WHATWG encoding label)
//   - Ragged rows (rows shorter or longer than the header row)
//
// PARSING RULES:
//   - The first record is the header row
//   - Records where every cell is empty are dropped
//   - Cell text is kept as-is; numbers are parsed later, where they are used
//
// =============================================================================

package csvparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/bakery-order-report/internal/config"
	"github.com/ginjaninja78/bakery-order-report/internal/types"
)

// ErrEmptyFile is returned when the input has no header row at all.
var ErrEmptyFile = errors.New("file is empty")

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseFile opens a CSV file and parses it with Parse.
func ParseFile(filePath string, settings config.CSVSettings) (*types.RawTable, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	table, err := Parse(file, settings)
	if err != nil {
		return nil, err
	}
	table.Source = filepath.Base(filePath)
	return table, nil
}

// Parse reads CSV data and returns the table.
//
// PARAMETERS:
//   - r: The raw CSV bytes.
//   - settings: Delimiter and encoding.
//
// RETURNS:
//   - The parsed table (possibly with zero rows).
//   - ErrEmptyFile if there is not even a header row, or a read error.
func Parse(r io.Reader, settings config.CSVSettings) (*types.RawTable, error) {
	decoded, err := decodingReader(r, settings.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(decoded)
	configureReader(csvReader, settings)

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	return types.NewRawTable(records[0], records[1:]), nil
}

// decodingReader wraps r so that it yields UTF-8. A byte-order mark always
// wins over the configured encoding.
func decodingReader(r io.Reader, encoding string) (io.Reader, error) {
	name := strings.ToLower(strings.TrimSpace(encoding))
	switch name {
	case "", "utf-8", "utf8":
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case "utf-16", "utf16":
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = []rune(settings.Delimiter)[0]
		} else {
			reader.Comma = ','
		}
	}

	// Form exports are not always rectangular.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
}
