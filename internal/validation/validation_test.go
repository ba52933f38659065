package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/storefront-client/internal/model"
)

func TestStruct(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		fields []string
	}{
		{
			name:  "valid cart item",
			input: model.AddToCartInput{ProductID: "p1", Quantity: 2, Size: "M", Color: "Red"},
		},
		{
			name:   "zero quantity",
			input:  model.AddToCartInput{ProductID: "p1"},
			fields: []string{"quantity: must be at least 1"},
		},
		{
			name:   "missing product",
			input:  model.AddToCartInput{Quantity: 1},
			fields: []string{"productId: is required"},
		},
		{
			name:   "return without items",
			input:  model.ReturnInput{OrderID: "o1", Reason: "damaged"},
			fields: []string{"items: is required"},
		},
		{
			name: "return item quantity",
			input: model.ReturnInput{
				OrderID: "o1",
				Reason:  "damaged",
				Items:   []model.ReturnItemInput{{ProductID: "p1", Quantity: 0}},
			},
			fields: []string{"quantity: must be at least 1"},
		},
		{
			name:   "unknown payment method",
			input:  model.CreateOrderInput{AddressID: "a1", PaymentMethod: "barter"},
			fields: []string{"paymentMethod: must be one of [card cash paypal]"},
		},
		{
			name:   "bad email",
			input:  model.ProfileInput{Email: "nope"},
			fields: []string{"email: must be a valid email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if len(tt.fields) == 0 {
				require.NoError(t, err)
				return
			}

			var verr *Error
			require.True(t, errors.As(err, &verr), "expected *Error, got %v", err)
			assert.Equal(t, tt.fields, verr.Fields)
		})
	}
}
