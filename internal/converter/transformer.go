// =============================================================================
// Bakery Order Report - Row Transformation Rules
// =============================================================================
//
// This file holds the per-row rules used by the engine and by the report
// serializer:
//   - binding price entries to column indices
//   - fulfillment classification
//   - date-to-group matching
//
// DUPLICATE HEADERS:
//   Order forms sometimes repeat a column title (two "備註" columns, say).
//   Prices are therefore bound to column *indices*, not header text: the n-th
//   column titled X uses the n-th price entry for X. When there are fewer
//   entries than columns, the extra columns reuse the last entry for X.
//
// =============================================================================

package converter

import (
	"strings"

	"github.com/ginjaninja78/bakery-order-report/internal/types"
)

// PickupMarker is the text that marks a face-to-face handoff order.
const PickupMarker = "面交"

// =============================================================================
// PRICE BINDING
// =============================================================================

// BindPrices returns, for each column of headers, the price entry that applies
// to it, or nil when no entry names that header.
func BindPrices(headers []string, prices []types.PriceEntry) []*types.PriceEntry {
	byHeader := make(map[string][]*types.PriceEntry)
	for i := range prices {
		h := prices[i].SourceHeader
		byHeader[h] = append(byHeader[h], &prices[i])
	}

	bound := make([]*types.PriceEntry, len(headers))
	seen := make(map[string]int)
	for idx, h := range headers {
		entries := byHeader[h]
		if len(entries) == 0 {
			continue
		}
		n := seen[h]
		seen[h]++
		if n >= len(entries) {
			n = len(entries) - 1
		}
		bound[idx] = entries[n]
	}

	return bound
}

// EntryColumns returns, for each price entry, the column index it reads from,
// or types.NotFound when its header is not in the table. It is the inverse of
// BindPrices: the n-th entry for X reads the n-th column titled X, falling
// back to the first such column.
func EntryColumns(headers []string, prices []types.PriceEntry) []int {
	columnsByHeader := make(map[string][]int)
	for idx, h := range headers {
		columnsByHeader[h] = append(columnsByHeader[h], idx)
	}

	columns := make([]int, len(prices))
	seen := make(map[string]int)
	for i, p := range prices {
		candidates := columnsByHeader[p.SourceHeader]
		if len(candidates) == 0 {
			columns[i] = types.NotFound
			continue
		}
		n := seen[p.SourceHeader]
		seen[p.SourceHeader]++
		if n >= len(candidates) {
			n = 0
		}
		columns[i] = candidates[n]
	}

	return columns
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// Classify returns Pickup when the fulfillment text mentions a face-to-face
// handoff and Shipping otherwise, including for empty text.
func Classify(fulfillment string) types.FulfillmentType {
	if strings.Contains(fulfillment, PickupMarker) {
		return types.Pickup
	}
	return types.Shipping
}

// MatchGroup returns the first group, in definition order, whose date values
// contain date exactly.
func MatchGroup(groups []types.GroupDefinition, date string) (types.GroupDefinition, bool) {
	for _, g := range groups {
		if g.Contains(date) {
			return g, true
		}
	}
	return types.GroupDefinition{}, false
}
