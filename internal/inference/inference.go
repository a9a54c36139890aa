// =============================================================================
// Bakery Order Report - Configuration Inference
// =============================================================================
//
// This module guesses the wizard's starting configuration from the header row
// of an uploaded order sheet. Order forms are built by hand, so the guesses
// rely on the words people usually put in their column titles:
//
//   IG / 帳號                  -> identity (customer handle) column
//   面交的日期 / 取貨的日期      -> date column (preferred)
//   時間 / 日期                -> date column (fallback)
//   取貨 / 方式                -> fulfillment column
//   "牛角可頌 [可頌]$45"        -> display label "可頌", unit price 45
//
// Every function here is total: any header list, including an empty one,
// produces a usable result. Nothing here can fail.
//
// =============================================================================

package inference

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/bakery-order-report/internal/types"
)

// DefaultFulfillmentColumn is used when no header looks like a fulfillment
// column. It usually does not exist in the table, in which case every order
// is classified as shipping.
const DefaultFulfillmentColumn = "取貨方式"

var (
	// labelPattern captures the text inside the first [...] pair.
	labelPattern = regexp.MustCompile(`\[(.*?)\]`)

	// pricePattern captures the digits after the first "$" that has digits.
	pricePattern = regexp.MustCompile(`\$(\d+)`)
)

// Infer returns the guessed column mapping and one price entry per header, in
// header order.
func Infer(headers []string) (types.ColumnMapping, []types.PriceEntry) {
	return InferMapping(headers), InferPrices(headers)
}

// =============================================================================
// COLUMN DETECTION
// =============================================================================

// InferMapping guesses the identity, date and fulfillment columns. The first
// matching header wins for each.
func InferMapping(headers []string) types.ColumnMapping {
	mapping := types.ColumnMapping{
		IdentityColumn:    headerAt(headers, 0),
		DateColumn:        secondOrFirst(headers),
		FulfillmentColumn: DefaultFulfillmentColumn,
	}

	if h, ok := findHeader(headers, func(h string) bool {
		return strings.Contains(strings.ToLower(h), "ig") || strings.Contains(h, "帳號")
	}); ok {
		mapping.IdentityColumn = h
	}

	if h, ok := findHeader(headers, func(h string) bool {
		return strings.Contains(h, "面交的日期") || strings.Contains(h, "取貨的日期")
	}); ok {
		mapping.DateColumn = h
	} else if h, ok := findHeader(headers, func(h string) bool {
		return containsFold(h, "時間") || containsFold(h, "日期")
	}); ok {
		mapping.DateColumn = h
	}

	if h, ok := findHeader(headers, func(h string) bool {
		return containsFold(h, "取貨") || containsFold(h, "方式")
	}); ok {
		mapping.FulfillmentColumn = h
	}

	return mapping
}

// findHeader returns the first header satisfying match.
func findHeader(headers []string, match func(string) bool) (string, bool) {
	for _, h := range headers {
		if match(h) {
			return h, true
		}
	}
	return "", false
}

// containsFold is a case-insensitive substring test.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// headerAt returns headers[i], or "" when out of range.
func headerAt(headers []string, i int) string {
	if i < len(headers) {
		return headers[i]
	}
	return ""
}

// secondOrFirst returns the second header, or the first when the second is
// missing or blank.
func secondOrFirst(headers []string) string {
	if second := headerAt(headers, 1); second != "" {
		return second
	}
	return headerAt(headers, 0)
}

// =============================================================================
// PRICE AND LABEL DETECTION
// =============================================================================

// InferPrices returns one entry per header, keeping header order. That order
// later fixes the column order of the report.
func InferPrices(headers []string) []types.PriceEntry {
	entries := make([]types.PriceEntry, len(headers))
	for i, h := range headers {
		entries[i] = InferPrice(h)
	}
	return entries
}

// InferPrice reads the display label and unit price out of a single header.
//
// EXAMPLES:
//   "牛角可頌 [可頌]$45" -> label "可頌", price 45
//   "備註"               -> label "備註", price 0
func InferPrice(header string) types.PriceEntry {
	entry := types.PriceEntry{
		SourceHeader: header,
		UnitPrice:    decimal.Zero,
		DisplayLabel: header,
	}

	if m := labelPattern.FindStringSubmatch(header); m != nil {
		entry.DisplayLabel = m[1]
	}

	if m := pricePattern.FindStringSubmatch(header); m != nil {
		if price, err := decimal.NewFromString(m[1]); err == nil {
			entry.UnitPrice = price
		}
	}

	return entry
}
