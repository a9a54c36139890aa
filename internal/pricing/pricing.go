// =============================================================================
// Bakery Order Report - Price File Interchange
// =============================================================================
//
// This module saves the price table to a JSON file and merges a saved file
// back into the price table of a new upload, so the operator does not retype
// prices for every sale.
//
// FILE FORMAT:
//   A JSON array with one record per column:
//
//   [
//     { "itemName": "牛角可頌 [可頌]$45", "price": 45, "displayName": "可頌" },
//     { "itemName": "備註", "price": 0, "displayName": "備註" }
//   ]
//
// MERGE RULES (Import):
//   - Records are matched to current entries by itemName == SourceHeader
//   - A matched entry takes the record's price and displayName, but only the
//     fields that are present and not null
//   - Records that match nothing are ignored; entries with no record keep
//     their values
//   - When two records share an itemName the later one wins
//   - The import is all-or-nothing: any malformed record or invalid merged
//     price rejects the whole file and the current table is kept
//
// =============================================================================

package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/ginjaninja78/bakery-order-report/internal/types"
	"github.com/ginjaninja78/bakery-order-report/internal/validation"
)

// ErrMalformedPriceFile is returned when the file is not a JSON array of
// price records.
var ErrMalformedPriceFile = errors.New("malformed price file")

// ErrInvalidPrice is returned when a merged entry fails validation.
var ErrInvalidPrice = errors.New("invalid price")

// Record field names.
const (
	fieldItemName    = "itemName"
	fieldPrice       = "price"
	fieldDisplayName = "displayName"
)

// record is the on-disk form of one PriceEntry.
type record struct {
	ItemName    string      `json:"itemName"`
	Price       json.Number `json:"price"`
	DisplayName string      `json:"displayName"`
}

// FileName returns the conventional price file name for now.
func FileName(now time.Time) string {
	return "prices_" + now.Format("2006-01-02") + ".json"
}

// =============================================================================
// EXPORT
// =============================================================================

// Export writes prices as an indented JSON array.
func Export(w io.Writer, prices []types.PriceEntry) error {
	records := make([]record, len(prices))
	for i, p := range prices {
		records[i] = record{
			ItemName:    p.SourceHeader,
			Price:       json.Number(p.UnitPrice.String()),
			DisplayName: p.DisplayLabel,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode price file: %w", err)
	}
	return nil
}

// =============================================================================
// IMPORT
// =============================================================================

// update is the set of fields one record changes.
type update struct {
	price       *decimal.Decimal
	displayName *string
}

// Import merges a price file into current.
//
// PARAMETERS:
//   - data: The file contents.
//   - current: The price table of the current upload (not modified).
//
// RETURNS:
//   - A new price table with the same length and order as current.
//   - ErrMalformedPriceFile or ErrInvalidPrice (wrapped); current should then
//     be kept as it is.
func Import(data []byte, current []types.PriceEntry) ([]types.PriceEntry, error) {
	updates, err := parse(data)
	if err != nil {
		return nil, err
	}

	merged := make([]types.PriceEntry, len(current))
	copy(merged, current)
	for i := range merged {
		u, ok := updates[merged[i].SourceHeader]
		if !ok {
			continue
		}
		if u.price != nil {
			merged[i].UnitPrice = *u.price
		}
		if u.displayName != nil {
			merged[i].DisplayLabel = *u.displayName
		}
	}

	if findings := validation.CheckPrices(merged); validation.HasErrors(findings) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPrice, findings[0].Error())
	}

	return merged, nil
}

// parse reads the records of a price file, keyed by item name.
func parse(data []byte) (map[string]update, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrMalformedPriceFile)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedPriceFile)
	}

	updates := make(map[string]update)
	for i, rec := range doc.Array() {
		if !rec.IsObject() {
			return nil, fmt.Errorf("%w: record %d is not an object", ErrMalformedPriceFile, i)
		}

		name := rec.Get(fieldItemName)
		if name.Type != gjson.String {
			return nil, fmt.Errorf("%w: record %d has no %s", ErrMalformedPriceFile, i, fieldItemName)
		}

		var u update

		if price := rec.Get(fieldPrice); price.Exists() && price.Type != gjson.Null {
			if price.Type != gjson.Number {
				return nil, fmt.Errorf("%w: record %d: %s is not a number", ErrMalformedPriceFile, i, fieldPrice)
			}
			d, err := decimal.NewFromString(price.Raw)
			if err != nil {
				return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedPriceFile, i, err)
			}
			u.price = &d
		}

		if label := rec.Get(fieldDisplayName); label.Exists() && label.Type != gjson.Null {
			if label.Type != gjson.String {
				return nil, fmt.Errorf("%w: record %d: %s is not a string", ErrMalformedPriceFile, i, fieldDisplayName)
			}
			s := label.String()
			u.displayName = &s
		}

		updates[name.String()] = u
	}

	return updates, nil
}
