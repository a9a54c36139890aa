package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/bakery-order-report/internal/types"
)

func TestCheckMapping(t *testing.T) {
	headers := []string{"IG", "日期", "餅$30"}

	findings := CheckMapping(headers, types.ColumnMapping{
		IdentityColumn:    "IG",
		DateColumn:        "日期",
		FulfillmentColumn: "取貨方式",
	})

	require.Len(t, findings, 1)
	assert.Equal(t, SeverityWarning, findings[0].Severity)
	assert.Equal(t, "fulfillment_column", findings[0].Field)
	assert.Equal(t, "取貨方式", findings[0].Value)
	assert.False(t, HasErrors(findings))
}

func TestCheckGroups(t *testing.T) {
	tests := []struct {
		name          string
		groups        []types.GroupDefinition
		expectedCount int
		expectErrors  bool
	}{
		{
			name: "disjoint groups",
			groups: []types.GroupDefinition{
				{Name: "A", DateValues: []string{"12/24"}},
				{Name: "B", DateValues: []string{"12/25"}},
			},
		},
		{
			name: "shared date",
			groups: []types.GroupDefinition{
				{Name: "A", DateValues: []string{"12/24"}},
				{Name: "B", DateValues: []string{"12/24", "12/25"}},
			},
			expectedCount: 1,
		},
		{
			name: "duplicate name",
			groups: []types.GroupDefinition{
				{Name: "A", DateValues: []string{"12/24"}},
				{Name: "A", DateValues: []string{"12/25"}},
			},
			expectedCount: 1,
		},
		{
			name:          "blank name",
			groups:        []types.GroupDefinition{{Name: "  "}},
			expectedCount: 1,
			expectErrors:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := CheckGroups(tt.groups)
			assert.Len(t, findings, tt.expectedCount)
			assert.Equal(t, tt.expectErrors, HasErrors(findings))
		})
	}
}

func TestCheckPrices(t *testing.T) {
	prices := []types.PriceEntry{
		{SourceHeader: "餅$30", UnitPrice: decimal.NewFromInt(30), DisplayLabel: "餅"},
		{SourceHeader: "備註", UnitPrice: decimal.Zero, DisplayLabel: "備註"},
		{SourceHeader: "退款", UnitPrice: decimal.NewFromInt(-5), DisplayLabel: "退款"},
	}

	findings := CheckPrices(prices)
	require.Len(t, findings, 1)
	assert.Equal(t, SeverityError, findings[0].Severity)
	assert.Contains(t, findings[0].Field, "prices[2]")
	assert.True(t, HasErrors(findings))
}

func TestFormatErrors(t *testing.T) {
	assert.Equal(t, "No validation issues.", FormatErrors(nil))

	out := FormatErrors([]*ValidationError{{
		Severity: SeverityWarning,
		Field:    "date_column",
		Value:    "日期",
		Message:  "column not found",
	}})
	assert.Contains(t, out, "1 issue(s)")
	assert.Contains(t, out, "[WARNING] date_column")
}
