package types

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is the amount type used for prices and totals.
type Money = decimal.Decimal

// CellKind tags the variant held by a Cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is a spreadsheet value: empty, text, or a number. Coercion rules live
// here and nowhere else:
//   - to number: parse the leading numeric prefix of the text, else zero
//   - to text:   the text itself, the number's canonical form, or ""
type Cell struct {
	kind CellKind
	text string
	num  decimal.Decimal
}

// Empty returns the empty cell.
func Empty() Cell {
	return Cell{kind: CellEmpty}
}

// Text returns a text cell. The empty string yields an empty cell.
func Text(s string) Cell {
	if s == "" {
		return Empty()
	}
	return Cell{kind: CellText, text: s}
}

// Number returns a numeric cell.
func Number(d decimal.Decimal) Cell {
	return Cell{kind: CellNumber, num: d}
}

// Kind returns the variant tag.
func (c Cell) Kind() CellKind {
	return c.kind
}

// IsEmpty reports whether the cell holds nothing.
func (c Cell) IsEmpty() bool {
	return c.kind == CellEmpty
}

// Truthy reports whether the cell counts as "filled in": non-empty text or a
// non-zero number.
func (c Cell) Truthy() bool {
	switch c.kind {
	case CellText:
		return c.text != ""
	case CellNumber:
		return !c.num.IsZero()
	default:
		return false
	}
}

// String returns the cell as text.
func (c Cell) String() string {
	switch c.kind {
	case CellText:
		return c.text
	case CellNumber:
		return c.num.String()
	default:
		return ""
	}
}

// Number returns the cell as a number, zero when it is not numeric.
func (c Cell) Number() decimal.Decimal {
	switch c.kind {
	case CellNumber:
		return c.num
	case CellText:
		return ParseNumber(c.text)
	default:
		return decimal.Zero
	}
}

// leadingNumber matches a decimal literal at the start of a string.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber reads the longest numeric prefix of s after leading whitespace,
// so "2個" is 2 and "1.5 盒" is 1.5. Anything without such a prefix is zero.
func ParseNumber(s string) decimal.Decimal {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero
	}

	m = strings.Replace(m, ".e", "e", 1)
	m = strings.Replace(m, ".E", "E", 1)
	m = strings.TrimSuffix(m, ".")

	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}
