package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/bakery-order-report/internal/types"
)

func TestInferMapping(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		expected types.ColumnMapping
	}{
		{
			name:    "typical order form",
			headers: []string{"時間戳記", "IG 帳號", "想要面交的日期", "取貨方式", "餅$30"},
			expected: types.ColumnMapping{
				IdentityColumn:    "IG 帳號",
				DateColumn:        "想要面交的日期",
				FulfillmentColumn: "取貨方式",
			},
		},
		{
			name:    "ig is case-insensitive",
			headers: []string{"名字", "Ig_Handle", "日期"},
			expected: types.ColumnMapping{
				IdentityColumn:    "Ig_Handle",
				DateColumn:        "日期",
				FulfillmentColumn: DefaultFulfillmentColumn,
			},
		},
		{
			name:    "account token matches identity",
			headers: []string{"名字", "帳號", "取貨的日期"},
			expected: types.ColumnMapping{
				IdentityColumn:    "帳號",
				DateColumn:        "取貨的日期",
				FulfillmentColumn: "取貨的日期",
			},
		},
		{
			name:    "preferred date header beats generic time header",
			headers: []string{"IG", "填單時間", "面交的日期"},
			expected: types.ColumnMapping{
				IdentityColumn:    "IG",
				DateColumn:        "面交的日期",
				FulfillmentColumn: DefaultFulfillmentColumn,
			},
		},
		{
			name:    "method header matches fulfillment",
			headers: []string{"IG", "日期", "寄送方式"},
			expected: types.ColumnMapping{
				IdentityColumn:    "IG",
				DateColumn:        "日期",
				FulfillmentColumn: "寄送方式",
			},
		},
		{
			name:    "positional fallbacks",
			headers: []string{"名字", "電話", "備註"},
			expected: types.ColumnMapping{
				IdentityColumn:    "名字",
				DateColumn:        "電話",
				FulfillmentColumn: DefaultFulfillmentColumn,
			},
		},
		{
			name:    "single header",
			headers: []string{"名字"},
			expected: types.ColumnMapping{
				IdentityColumn:    "名字",
				DateColumn:        "名字",
				FulfillmentColumn: DefaultFulfillmentColumn,
			},
		},
		{
			name:    "blank second header falls back to first",
			headers: []string{"名字", ""},
			expected: types.ColumnMapping{
				IdentityColumn:    "名字",
				DateColumn:        "名字",
				FulfillmentColumn: DefaultFulfillmentColumn,
			},
		},
		{
			name:    "no headers",
			headers: nil,
			expected: types.ColumnMapping{
				FulfillmentColumn: DefaultFulfillmentColumn,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferMapping(tt.headers))
		})
	}
}

func TestInferPrice(t *testing.T) {
	tests := []struct {
		name          string
		header        string
		expectedLabel string
		expectedPrice int64
	}{
		{name: "label and price", header: "牛角可頌 [可頌]$45", expectedLabel: "可頌", expectedPrice: 45},
		{name: "plain header", header: "備註", expectedLabel: "備註", expectedPrice: 0},
		{name: "price only", header: "餅$30", expectedLabel: "餅$30", expectedPrice: 30},
		{name: "first bracket pair wins", header: "[A][B] $10", expectedLabel: "A", expectedPrice: 10},
		{name: "first priced dollar wins", header: "$ 盒 $20 $30", expectedLabel: "$ 盒 $20 $30", expectedPrice: 20},
		{name: "digits stop at decimal point", header: "吐司$55.5", expectedLabel: "吐司$55.5", expectedPrice: 55},
		{name: "empty brackets give empty label", header: "[]$5", expectedLabel: "", expectedPrice: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := InferPrice(tt.header)
			assert.Equal(t, tt.header, entry.SourceHeader)
			assert.Equal(t, tt.expectedLabel, entry.DisplayLabel)
			assert.Equal(t, tt.expectedPrice, entry.UnitPrice.IntPart())
		})
	}
}

func TestInferKeepsHeaderOrder(t *testing.T) {
	headers := []string{"IG", "日期", "取貨方式", "餅$30", "備註"}

	mapping, prices := Infer(headers)
	assert.Equal(t, "IG", mapping.IdentityColumn)

	require.Len(t, prices, len(headers))
	for i, h := range headers {
		assert.Equal(t, h, prices[i].SourceHeader)
	}
	assert.True(t, prices[3].Priced())
	assert.False(t, prices[4].Priced())
}
