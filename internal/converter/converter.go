// =============================================================================
// Bakery Order Report - Order Transformation Engine
// =============================================================================
//
// This module turns the uploaded order rows into priced, classified orders.
// It is the only stage that does arithmetic on the spreadsheet.
//
// TRANSFORMATION PIPELINE (per run):
//   1. Resolve the identity/date/fulfillment column indices once
//   2. Bind every column index to its PriceEntry
//   3. For each row:
//      a. Total = sum of quantity x unit price over the priced columns
//      b. Identity URL = base URL + raw identity cell
//      c. Pickup if the fulfillment cell contains 面交, else Shipping
//      d. First group whose date set holds the date cell
//      e. Append to All, to Pickup or Shipping, and to the group bucket
//
// INVARIANTS:
//   - len(All) == len(table.Rows)
//   - len(Shipping) + len(Pickup) == len(All)
//   - the group buckets hold at most len(All) orders in total
//
// Malformed business data never fails a run: unresolved columns and
// non-numeric quantities degrade to empty text and zero.
//
// =============================================================================

package converter

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/bakery-order-report/internal/types"
)

// =============================================================================
// ENGINE OPTIONS
// =============================================================================

// DefaultIdentityBaseURL is prefixed to the identity cell to build the
// customer's profile link.
const DefaultIdentityBaseURL = "https://www.instagram.com/"

// Default report header labels for the three leading columns.
const (
	DefaultStatusLabel   = "選項"
	DefaultTotalLabel    = "總額"
	DefaultIdentityLabel = "IG 網址"
)

// Options controls the parts of a run that are not derived from the table.
type Options struct {
	// IdentityBaseURL is concatenated with the raw identity value.
	IdentityBaseURL string

	// InitialStatus is assigned to every new order.
	InitialStatus types.OrderStatus

	// StatusLabel, TotalLabel and IdentityLabel head the first three report
	// columns.
	StatusLabel   string
	TotalLabel    string
	IdentityLabel string
}

// DefaultOptions returns the options used by Transform.
func DefaultOptions() Options {
	return Options{
		IdentityBaseURL: DefaultIdentityBaseURL,
		InitialStatus:   types.StatusPendingPayment,
		StatusLabel:     DefaultStatusLabel,
		TotalLabel:      DefaultTotalLabel,
		IdentityLabel:   DefaultIdentityLabel,
	}
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine runs the transformation. It holds no state between runs, so one
// Engine can be reused for any number of tables.
type Engine struct {
	options Options
	logger  *slog.Logger
}

// New creates an Engine. A nil logger means slog.Default().
func New(options Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		options: options,
		logger:  logger.With(slog.String("component", "converter")),
	}
}

// Transform runs the default engine. See Engine.Transform.
func Transform(table *types.RawTable, mapping types.ColumnMapping, prices []types.PriceEntry, groups []types.GroupDefinition) *types.ProcessedResults {
	return New(DefaultOptions(), nil).Transform(table, mapping, prices, groups)
}

// Transform prices, classifies and groups every row of table.
//
// PARAMETERS:
//   - table: The uploaded rows (never modified).
//   - mapping: The identity/date/fulfillment column names.
//   - prices: One entry per header; its order fixes the report column order.
//   - groups: Date batches; the first group containing a date wins.
//
// RETURNS:
//   - The processed results. The function is deterministic and never fails.
func (e *Engine) Transform(table *types.RawTable, mapping types.ColumnMapping, prices []types.PriceEntry, groups []types.GroupDefinition) *types.ProcessedResults {
	identityIdx, dateIdx, fulfillmentIdx := mapping.Resolve(table)
	columnPrices := BindPrices(table.Headers, prices)

	results := &types.ProcessedResults{
		All:           make([]*types.ProcessedOrder, 0, len(table.Rows)),
		Shipping:      []*types.ProcessedOrder{},
		Pickup:        []*types.ProcessedOrder{},
		ReportHeaders: e.reportHeaders(prices),
	}

	for i, row := range table.Rows {
		order := &types.ProcessedOrder{
			Status:      e.options.InitialStatus,
			TotalAmount: RowTotal(row, columnPrices),
			IdentityURL: e.options.IdentityBaseURL + row.At(identityIdx).String(),
			OriginalRow: row,
			Fulfillment: Classify(row.At(fulfillmentIdx).String()),
			RowNumber:   i + 1,
		}

		if group, ok := MatchGroup(groups, row.At(dateIdx).String()); ok {
			order.GroupKey = group.Name
			results.AddToGroup(group.Name, order)
		}

		results.All = append(results.All, order)
		if order.Fulfillment == types.Pickup {
			results.Pickup = append(results.Pickup, order)
		} else {
			results.Shipping = append(results.Shipping, order)
		}
	}

	e.logger.Debug("transformed orders",
		slog.Int("rows", len(table.Rows)),
		slog.Int("pickup", len(results.Pickup)),
		slog.Int("shipping", len(results.Shipping)),
		slog.Int("groups", len(results.Groups)),
		slog.Bool("identity_resolved", identityIdx != types.NotFound),
		slog.Bool("date_resolved", dateIdx != types.NotFound),
		slog.Bool("fulfillment_resolved", fulfillmentIdx != types.NotFound))

	return results
}

// reportHeaders builds [status, total, identity, ...display labels].
func (e *Engine) reportHeaders(prices []types.PriceEntry) []string {
	headers := make([]string, 0, len(prices)+3)
	headers = append(headers, e.options.StatusLabel, e.options.TotalLabel, e.options.IdentityLabel)
	for _, p := range prices {
		headers = append(headers, p.DisplayLabel)
	}
	return headers
}

// RowTotal sums quantity x unit price over the priced columns of row.
// columnPrices is indexed by column, as returned by BindPrices.
func RowTotal(row types.Row, columnPrices []*types.PriceEntry) decimal.Decimal {
	total := decimal.Zero
	for idx, entry := range columnPrices {
		if entry == nil || !entry.Priced() {
			continue
		}
		total = total.Add(row.At(idx).Number().Mul(entry.UnitPrice))
	}
	return total
}
