package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_Counters(t *testing.T) {
	tests := []struct {
		name     string
		cart     *Cart
		items    int
		empty    bool
		contains bool
	}{
		{name: "nil cart", cart: nil, items: 0, empty: true},
		{name: "no items", cart: &Cart{}, items: 0, empty: true},
		{
			name: "two lines of the same product",
			cart: &Cart{Items: []CartItem{
				{ProductID: "P1", Quantity: 2, Size: "M"},
				{ProductID: "P1", Quantity: 1, Size: "L"},
				{ProductID: "P4", Quantity: 3},
			}},
			items:    6,
			contains: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.items, tt.cart.TotalItems())
			assert.Equal(t, tt.empty, tt.cart.IsEmpty())
			assert.Equal(t, tt.contains, tt.cart.Contains("P1"))
		})
	}
}

func TestCart_DecodesServerTotals(t *testing.T) {
	raw := `{"id":"c1","userId":"u1","items":[{"id":"i1","productId":"P1","quantity":2,"price":"25"}],
		"subtotal":"50","shipping":"10","tax":"4","total":"64",
		"promo":{"code":"FLAT50","type":"fixed","value":"50"}}`

	var c Cart
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.True(t, c.Total.Equal(decimal.NewFromInt(64)))
	require.NotNil(t, c.Promo)
	assert.Equal(t, DiscountFixed, c.Promo.Type)
	assert.Equal(t, 2, c.TotalItems())
}
