package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает статус заказа. Переходы выполняет сервер.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderItem описывает позицию оформленного заказа.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	Price     decimal.Decimal `json:"price"`
}

// Order описывает оформленный заказ.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress Address         `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          OrderStatus     `json:"status"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Shipping        decimal.Decimal `json:"shipping"`
	Tax             decimal.Decimal `json:"tax"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	PromoCode       string          `json:"promoCode,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// TrackingEvent описывает одно событие доставки.
type TrackingEvent struct {
	Status      string    `json:"status"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Tracking содержит сведения об отслеживании заказа.
type Tracking struct {
	OrderID           string          `json:"orderId"`
	Status            OrderStatus     `json:"status"`
	Carrier           string          `json:"carrier,omitempty"`
	TrackingNumber    string          `json:"trackingNumber,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimatedDelivery,omitempty"`
	Events            []TrackingEvent `json:"events"`
}

// ReturnStatus описывает статус заявки на возврат.
type ReturnStatus string

const (
	ReturnStatusRequested ReturnStatus = "requested"
	ReturnStatusApproved  ReturnStatus = "approved"
	ReturnStatusRejected  ReturnStatus = "rejected"
	ReturnStatusRefunded  ReturnStatus = "refunded"
	ReturnStatusCancelled ReturnStatus = "cancelled"
)

// ReturnItem описывает возвращаемую позицию заказа.
type ReturnItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason,omitempty"`
}

// Return описывает заявку на возврат.
type Return struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"orderId"`
	UserID       string          `json:"userId"`
	Items        []ReturnItem    `json:"items"`
	Reason       string          `json:"reason"`
	Description  string          `json:"description,omitempty"`
	Images       []string        `json:"images,omitempty"`
	Status       ReturnStatus    `json:"status"`
	RefundAmount decimal.Decimal `json:"refundAmount"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
