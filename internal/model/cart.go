package model

import "github.com/shopspring/decimal"

// DiscountType описывает способ применения промокода.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// AppliedPromo описывает промокод, применённый к корзине.
type AppliedPromo struct {
	Code  string          `json:"code"`
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// CartItem описывает позицию корзины. Price фиксируется в момент добавления.
type CartItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Product   *Product        `json:"product,omitempty"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	Price     decimal.Decimal `json:"price"`
}

// Cart описывает корзину пользователя с суммами, рассчитанными на сервере.
type Cart struct {
	ID       string          `json:"id"`
	UserID   string          `json:"userId"`
	Items    []CartItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Promo    *AppliedPromo   `json:"promo,omitempty"`
}

// TotalItems возвращает суммарное количество единиц товара в корзине.
func (c *Cart) TotalItems() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// IsEmpty сообщает, что корзины нет или в ней нет позиций.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Contains сообщает, есть ли в корзине хотя бы одна позиция указанного товара.
func (c *Cart) Contains(productID string) bool {
	if c == nil {
		return false
	}
	for _, it := range c.Items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}
