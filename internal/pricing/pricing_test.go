package pricing

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/bakery-order-report/internal/types"
)

func currentPrices() []types.PriceEntry {
	return []types.PriceEntry{
		{SourceHeader: "牛角可頌 [可頌]$45", UnitPrice: decimal.NewFromInt(45), DisplayLabel: "可頌"},
		{SourceHeader: "餅$30", UnitPrice: decimal.NewFromInt(30), DisplayLabel: "餅$30"},
		{SourceHeader: "備註", UnitPrice: decimal.Zero, DisplayLabel: "備註"},
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 12, 20, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "prices_2024-12-20.json", FileName(now))
}

func TestExportImportRoundTrip(t *testing.T) {
	edited := currentPrices()
	edited[1].UnitPrice = decimal.RequireFromString("32.5")
	edited[1].DisplayLabel = "餅"

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, edited))
	assert.Contains(t, buf.String(), `"itemName": "餅$30"`)
	assert.Contains(t, buf.String(), `"price": 32.5`)

	merged, err := Import(buf.Bytes(), currentPrices())
	require.NoError(t, err)
	require.Len(t, merged, len(edited))
	for i := range edited {
		assert.Equal(t, edited[i].SourceHeader, merged[i].SourceHeader)
		assert.True(t, edited[i].UnitPrice.Equal(merged[i].UnitPrice), "price %d", i)
		assert.Equal(t, edited[i].DisplayLabel, merged[i].DisplayLabel)
	}
}

func TestImportMergeRules(t *testing.T) {
	data := []byte(`[
		{"itemName": "餅$30", "price": 35},
		{"itemName": "備註", "price": null, "displayName": "Note"},
		{"itemName": "不存在", "price": 99, "displayName": "ghost"},
		{"itemName": "牛角可頌 [可頌]$45", "price": 40},
		{"itemName": "牛角可頌 [可頌]$45", "price": 50}
	]`)
	current := currentPrices()

	merged, err := Import(data, current)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(50).Equal(merged[0].UnitPrice), "later duplicate wins")
	assert.Equal(t, "可頌", merged[0].DisplayLabel)
	assert.True(t, decimal.NewFromInt(35).Equal(merged[1].UnitPrice))
	assert.Equal(t, "餅$30", merged[1].DisplayLabel, "absent displayName keeps the current label")
	assert.True(t, merged[2].UnitPrice.IsZero(), "null price keeps the current price")
	assert.Equal(t, "Note", merged[2].DisplayLabel)

	assert.True(t, decimal.NewFromInt(45).Equal(current[0].UnitPrice), "current must not be modified")
}

func TestImportRejects(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected error
	}{
		{name: "not json", data: `{not json`, expected: ErrMalformedPriceFile},
		{name: "object instead of array", data: `{"itemName": "餅$30"}`, expected: ErrMalformedPriceFile},
		{name: "non-object record", data: `[1, 2]`, expected: ErrMalformedPriceFile},
		{name: "missing item name", data: `[{"price": 3}]`, expected: ErrMalformedPriceFile},
		{name: "string price", data: `[{"itemName": "餅$30", "price": "35"}]`, expected: ErrMalformedPriceFile},
		{name: "numeric label", data: `[{"itemName": "餅$30", "displayName": 7}]`, expected: ErrMalformedPriceFile},
		{name: "negative price", data: `[{"itemName": "餅$30", "price": -1}]`, expected: ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, err := Import([]byte(tt.data), currentPrices())
			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, merged)
		})
	}
}

func TestImportEmptyArray(t *testing.T) {
	merged, err := Import([]byte(`[]`), currentPrices())
	require.NoError(t, err)
	assert.Equal(t, currentPrices(), merged)
}
