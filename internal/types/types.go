// =============================================================================
// Bakery Order Report - Shared Types
// =============================================================================
//
// This package contains the data model shared by every stage of the pipeline.
// Keeping it in one leaf package avoids import cycles between:
//   - inference  (produces ColumnMapping and PriceEntry values)
//   - converter  (produces ProcessedResults)
//   - report     (consumes ProcessedResults)
//   - session    (threads all of the above through the wizard steps)
//
// LIFECYCLE:
//   RawTable is created once at upload and never mutated. ColumnMapping and
//   the PriceEntry list are seeded by inference and then replaced (not edited
//   in place) by the user. ProcessedResults is computed once per run.
//
// =============================================================================

package types

// NotFound is the column index used when a mapped header does not exist.
const NotFound = -1

// =============================================================================
// RAW TABLE
// =============================================================================

// Row is one data row of the uploaded spreadsheet, in original column order.
type Row []Cell

// At returns the cell at idx, or an empty cell when idx is NotFound or past the
// end of the row. Spreadsheet readers drop trailing empty cells, so short rows
// are normal.
func (r Row) At(idx int) Cell {
	if idx < 0 || idx >= len(r) {
		return Empty()
	}
	return r[idx]
}

// IsBlank reports whether every cell in the row is empty.
func (r Row) IsBlank() bool {
	for _, c := range r {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// RawTable is the parsed upload: a header row plus the non-blank data rows.
type RawTable struct {
	// Headers are the column titles from the first row, in column order.
	// Duplicates are allowed; lookups by text return the first match.
	Headers []string

	// Rows contains every data row that has at least one non-empty cell.
	Rows []Row

	// Source is the path or name the table was read from (informational).
	Source string
}

// NewRawTable builds a RawTable from string records, dropping rows where every
// cell is empty.
//
// PARAMETERS:
//   - headers: The header row.
//   - records: The data rows as read from the file.
//
// RETURNS:
//   - A RawTable whose rows hold Text cells (or Empty for "").
func NewRawTable(headers []string, records [][]string) *RawTable {
	table := &RawTable{
		Headers: append([]string(nil), headers...),
		Rows:    make([]Row, 0, len(records)),
	}

	for _, record := range records {
		row := make(Row, len(record))
		for i, value := range record {
			row[i] = Text(value)
		}
		if row.IsBlank() {
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// ColumnIndex returns the index of the first header exactly equal to header,
// or NotFound.
func (t *RawTable) ColumnIndex(header string) int {
	for i, h := range t.Headers {
		if h == header {
			return i
		}
	}
	return NotFound
}

// =============================================================================
// CONFIGURATION VALUES
// =============================================================================

// ColumnMapping names the three columns the engine needs to understand.
// Each field should equal one of RawTable.Headers; unresolved names degrade
// to empty values instead of failing the run.
type ColumnMapping struct {
	// IdentityColumn holds the customer's social-media handle.
	IdentityColumn string `yaml:"identity_column" json:"identityColumn"`

	// DateColumn holds the pickup/shipping date used for grouping.
	DateColumn string `yaml:"date_column" json:"dateColumn"`

	// FulfillmentColumn says whether the order is picked up or shipped.
	FulfillmentColumn string `yaml:"fulfillment_column" json:"fulfillmentColumn"`
}

// Resolve returns the identity, date and fulfillment column indices in table.
func (m ColumnMapping) Resolve(table *RawTable) (identityIdx, dateIdx, fulfillmentIdx int) {
	return table.ColumnIndex(m.IdentityColumn),
		table.ColumnIndex(m.DateColumn),
		table.ColumnIndex(m.FulfillmentColumn)
}

// PriceEntry associates one source column with a unit price and a label.
// There is one entry per uploaded header, priced or not.
type PriceEntry struct {
	// SourceHeader is the header text this entry belongs to.
	SourceHeader string

	// UnitPrice is the price per unit. Zero marks an informational column.
	UnitPrice Money `validate:"gte=0"`

	// DisplayLabel is the column title used in the report.
	DisplayLabel string
}

// Priced reports whether the entry contributes to order totals.
func (p PriceEntry) Priced() bool {
	return p.UnitPrice.IsPositive()
}

// GroupDefinition is a named batch of order dates.
type GroupDefinition struct {
	// Name is the group label and the sheet name in the report.
	Name string `yaml:"name" json:"name" validate:"required"`

	// DateValues are the exact date texts that belong to this group.
	DateValues []string `yaml:"dates" json:"dates"`
}

// Contains reports whether date is one of the group's date values.
func (g GroupDefinition) Contains(date string) bool {
	for _, d := range g.DateValues {
		if d == date {
			return true
		}
	}
	return false
}

// =============================================================================
// PROCESSED ORDERS
// =============================================================================

// OrderStatus is the workflow status of an order. Only StatusPendingPayment is
// ever assigned; the rest exist so reports can be edited by hand afterwards.
type OrderStatus string

const (
	StatusPendingPayment OrderStatus = "待匯款"
	StatusPaid           OrderStatus = "匯款完成"
	StatusToBake         OrderStatus = "待製作"
	StatusBaked          OrderStatus = "製作完成"
	StatusAwaitingPickup OrderStatus = "待領取"
	StatusPickedUp       OrderStatus = "領取完成"
	StatusProblem        OrderStatus = "有問題"
)

// FulfillmentType says how the order leaves the bakery.
type FulfillmentType string

const (
	Pickup   FulfillmentType = "Pickup"
	Shipping FulfillmentType = "Shipping"
)

// ProcessedOrder is one priced and classified row. It is never modified after
// the engine creates it.
type ProcessedOrder struct {
	Status      OrderStatus
	TotalAmount Money
	IdentityURL string

	// OriginalRow is the source row itself, not a copy.
	OriginalRow Row

	Fulfillment FulfillmentType

	// GroupKey is the name of the group the order landed in, or "".
	GroupKey string

	// RowNumber is the 1-based position among the table's data rows.
	RowNumber int
}

// GroupBucket holds the orders assigned to one group.
type GroupBucket struct {
	Name   string
	Orders []*ProcessedOrder
}

// Result view names accepted by ProcessedResults.View.
const (
	ViewAll      = "all"
	ViewShipping = "shipping"
	ViewPickup   = "pickup"
)

// ProcessedResults is the terminal artifact of a run.
type ProcessedResults struct {
	All      []*ProcessedOrder
	Shipping []*ProcessedOrder
	Pickup   []*ProcessedOrder

	// Groups are kept in the order each group first received an order.
	Groups []GroupBucket

	// ReportHeaders is the header row of every report sheet.
	ReportHeaders []string
}

// AddToGroup appends order to the named bucket, creating it on first use.
func (r *ProcessedResults) AddToGroup(name string, order *ProcessedOrder) {
	for i := range r.Groups {
		if r.Groups[i].Name == name {
			r.Groups[i].Orders = append(r.Groups[i].Orders, order)
			return
		}
	}
	r.Groups = append(r.Groups, GroupBucket{Name: name, Orders: []*ProcessedOrder{order}})
}

// Group returns the orders of the named group, or nil.
func (r *ProcessedResults) Group(name string) []*ProcessedOrder {
	for _, bucket := range r.Groups {
		if bucket.Name == name {
			return bucket.Orders
		}
	}
	return nil
}

// GroupNames lists the group buckets in insertion order.
func (r *ProcessedResults) GroupNames() []string {
	names := make([]string, len(r.Groups))
	for i, bucket := range r.Groups {
		names[i] = bucket.Name
	}
	return names
}

// View returns the orders shown for a results tab: "all", "shipping",
// "pickup", or a group name. Unknown names yield nil.
func (r *ProcessedResults) View(name string) []*ProcessedOrder {
	switch name {
	case ViewAll:
		return r.All
	case ViewShipping:
		return r.Shipping
	case ViewPickup:
		return r.Pickup
	default:
		return r.Group(name)
	}
}
