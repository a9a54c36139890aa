// =============================================================================
// Bakery Order Report - Report Serializer
// =============================================================================
//
// This module lays the processed orders out as spreadsheet sheets. It decides
// *what* goes in each cell; internal/xlsxwriter decides how it is stored.
//
// SHEET SET (in this order):
//   1. All orders        - always present, even when there are no orders
//   2. Shipping orders   - only when at least one order ships
//   3. Pickup orders     - only when at least one order is picked up
//   4. One sheet per group, in the order the groups first received an order
//
// SHEET LAYOUT:
//   | 選項   | 總額 | IG 網址     | <label 1> | <label 2> | ... |
//   | 待匯款 | 60   | https://... | <cell 1>  | <cell 2>  | ... |
//   | 總計   | 60   |             | <sum/cnt> | <sum/cnt> | ... |
//
//   The last row is the summary: the sum of the totals, then for every price
//   entry either the sum of its quantities (priced columns) or the number of
//   filled-in cells (informational columns).
//
// SHEET NAMES:
//   Excel forbids \ / ? * [ ] : in sheet names and caps them at 31
//   characters. Names are sanitized, and if two groups end up with the same
//   sheet name the later ones get a numeric suffix ("name_2").
//
// =============================================================================

package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/bakery-order-report/internal/converter"
	"github.com/ginjaninja78/bakery-order-report/internal/types"
)

// MaxSheetNameLength is the longest sheet name a workbook accepts.
const MaxSheetNameLength = 31

// fallbackSheetName replaces names that sanitize to nothing.
const fallbackSheetName = "Sheet"

// =============================================================================
// TYPES
// =============================================================================

// Sheet is one worksheet of the report.
type Sheet struct {
	// Name is the sanitized, unique worksheet name.
	Name string

	// Rows are the header row, one row per order, and the summary row.
	Rows [][]types.Cell

	// Orders is the number of order rows (excluding header and summary).
	Orders int
}

// Labels are the fixed sheet names and the summary row label.
type Labels struct {
	AllSheet      string
	ShippingSheet string
	PickupSheet   string
	Summary       string
}

// DefaultLabels returns the standard Traditional Chinese labels.
func DefaultLabels() Labels {
	return Labels{
		AllSheet:      "所有訂單",
		ShippingSheet: "寄送訂單",
		PickupSheet:   "面交訂單",
		Summary:       "總計",
	}
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// Serialize builds the report sheets with the default labels.
func Serialize(results *types.ProcessedResults, table *types.RawTable, prices []types.PriceEntry) []Sheet {
	return SerializeWithLabels(results, table, prices, DefaultLabels())
}

// SerializeWithLabels builds the report sheets.
//
// PARAMETERS:
//   - results: The output of the transformation engine.
//   - table: The uploaded table (its headers locate each price entry's column).
//   - prices: The price list used for the run, in report column order.
//   - labels: Sheet names and the summary label.
//
// RETURNS:
//   - The sheets in workbook order. Never empty: the all-orders sheet is
//     always included.
func SerializeWithLabels(results *types.ProcessedResults, table *types.RawTable, prices []types.PriceEntry, labels Labels) []Sheet {
	b := &builder{
		results: results,
		table:   table,
		prices:  prices,
		columns: converter.EntryColumns(table.Headers, prices),
		labels:  labels,
		used:    make(map[string]bool),
	}

	sheets := []Sheet{b.sheet(labels.AllSheet, results.All)}
	if len(results.Shipping) > 0 {
		sheets = append(sheets, b.sheet(labels.ShippingSheet, results.Shipping))
	}
	if len(results.Pickup) > 0 {
		sheets = append(sheets, b.sheet(labels.PickupSheet, results.Pickup))
	}
	for _, bucket := range results.Groups {
		if len(bucket.Orders) == 0 {
			continue
		}
		sheets = append(sheets, b.sheet(bucket.Name, bucket.Orders))
	}

	return sheets
}

// builder carries the per-report state shared by all sheets.
type builder struct {
	results *types.ProcessedResults
	table   *types.RawTable
	prices  []types.PriceEntry
	columns []int
	labels  Labels

	// used holds the lower-cased names already taken; workbook sheet names
	// are case-insensitive.
	used map[string]bool
}

func (b *builder) sheet(name string, orders []*types.ProcessedOrder) Sheet {
	rows := make([][]types.Cell, 0, len(orders)+2)

	header := make([]types.Cell, len(b.results.ReportHeaders))
	for i, h := range b.results.ReportHeaders {
		header[i] = types.Text(h)
	}
	rows = append(rows, header)

	for _, order := range orders {
		rows = append(rows, b.orderRow(order))
	}
	rows = append(rows, b.summaryRow(orders))

	return Sheet{
		Name:   b.uniqueName(name),
		Rows:   rows,
		Orders: len(orders),
	}
}

// orderRow is [status, total, identity URL, ...original cells], with the
// original cells padded to the table's header count.
func (b *builder) orderRow(order *types.ProcessedOrder) []types.Cell {
	width := len(b.table.Headers)
	if len(order.OriginalRow) > width {
		width = len(order.OriginalRow)
	}

	row := make([]types.Cell, 0, width+3)
	row = append(row,
		types.Text(string(order.Status)),
		types.Number(order.TotalAmount),
		types.Text(order.IdentityURL),
	)
	for i := 0; i < width; i++ {
		row = append(row, order.OriginalRow.At(i))
	}
	return row
}

// summaryRow is [label, Σ totals, "", per price entry: Σ quantity or count].
func (b *builder) summaryRow(orders []*types.ProcessedOrder) []types.Cell {
	total := decimal.Zero
	for _, order := range orders {
		total = total.Add(order.TotalAmount)
	}

	row := make([]types.Cell, 0, len(b.prices)+3)
	row = append(row, types.Text(b.labels.Summary), types.Number(total), types.Empty())
	for i, entry := range b.prices {
		row = append(row, types.Number(ColumnSummary(orders, b.columns[i], entry)))
	}
	return row
}

// ColumnSummary aggregates one column over orders: the sum of its numeric
// values when entry is priced, otherwise the number of filled-in cells. A
// column index of types.NotFound yields zero.
func ColumnSummary(orders []*types.ProcessedOrder, column int, entry types.PriceEntry) decimal.Decimal {
	if column == types.NotFound {
		return decimal.Zero
	}

	if entry.Priced() {
		sum := decimal.Zero
		for _, order := range orders {
			sum = sum.Add(order.OriginalRow.At(column).Number())
		}
		return sum
	}

	count := int64(0)
	for _, order := range orders {
		if order.OriginalRow.At(column).Truthy() {
			count++
		}
	}
	return decimal.NewFromInt(count)
}

// =============================================================================
// SHEET NAMES
// =============================================================================

// sheetNameReplacer maps every character a workbook forbids to "_".
var sheetNameReplacer = strings.NewReplacer(
	`\`, "_", "/", "_", "?", "_", "*", "_",
	"[", "_", "]", "_", ":", "_",
)

// SanitizeSheetName replaces \ / ? * [ ] : with "_" and truncates the result
// to 31 characters.
func SanitizeSheetName(name string) string {
	return truncateRunes(sheetNameReplacer.Replace(name), MaxSheetNameLength)
}

// uniqueName sanitizes name and appends "_2", "_3", ... until it no longer
// collides with a sheet already in the report.
func (b *builder) uniqueName(name string) string {
	base := SanitizeSheetName(name)

	// Workbooks also reject blank names and names wrapped in apostrophes.
	if strings.HasPrefix(base, "'") {
		base = "_" + strings.TrimPrefix(base, "'")
	}
	if strings.HasSuffix(base, "'") {
		base = strings.TrimSuffix(base, "'") + "_"
	}
	if strings.TrimSpace(base) == "" {
		base = fallbackSheetName
	}

	candidate := base
	for n := 2; b.used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf("_%d", n)
		candidate = truncateRunes(base, MaxSheetNameLength-utf8.RuneCountInString(suffix)) + suffix
	}

	b.used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
