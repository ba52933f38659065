package repository

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/pricing"
)

// Orders возвращает заказы пользователя, новые первыми. Пустой status
// выбирает заказы в любом статусе.
func (m *Memory) Orders(ctx context.Context, userID string, status model.OrderStatus) []model.Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Order, 0)
	for _, o := range m.account(userID).orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// Order возвращает заказ пользователя.
func (m *Memory) Order(ctx context.Context, userID, id string) (model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.orderIndex(userID, id)
	if i < 0 {
		return model.Order{}, ErrNotFound
	}
	return m.account(userID).orders[i], nil
}

func (m *Memory) orderIndex(userID, id string) int {
	return slices.IndexFunc(m.account(userID).orders, func(o model.Order) bool { return o.ID == id })
}

// CreateOrder оформляет заказ из корзины пользователя. Скидка по промокоду
// рассчитывается в момент оформления, корзина очищается.
func (m *Memory) CreateOrder(ctx context.Context, userID string, in model.CreateOrderInput) (model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.account(userID)
	if len(acc.cart.Items) == 0 {
		return model.Order{}, ErrEmptyCart
	}

	ai := slices.IndexFunc(acc.addresses, func(a model.Address) bool { return a.ID == in.AddressID })
	if ai < 0 {
		return model.Order{}, ErrNotFound
	}

	promo := acc.cart.Promo
	if code := strings.TrimSpace(in.PromoCode); code != "" {
		p, ok := m.promos.Lookup(code)
		if !ok {
			return model.Order{}, ErrInvalidPromo
		}
		promo = &p
	}

	items := make([]model.OrderItem, 0, len(acc.cart.Items))
	for _, it := range acc.cart.Items {
		name := it.ProductID
		if it.Product != nil {
			name = it.Product.Name
		}
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			Name:      name,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Color:     it.Color,
			Price:     it.Price,
		})
	}

	total := pricing.Apply(acc.cart.Total, promo).Round(2)
	now := m.now()
	order := model.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: acc.addresses[ai],
		PaymentMethod:   in.PaymentMethod,
		Status:          model.OrderStatusPending,
		Subtotal:        acc.cart.Subtotal,
		Shipping:        acc.cart.Shipping,
		Tax:             acc.cart.Tax,
		Discount:        acc.cart.Total.Sub(total),
		Total:           total,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if promo != nil {
		order.PromoCode = promo.Code
	}

	acc.orders = append([]model.Order{order}, acc.orders...)
	acc.cart.Items = []model.CartItem{}
	acc.cart.Promo = nil
	recalculate(&acc.cart)
	m.notifyLocked(acc, "Order placed", "Order "+order.ID+" has been placed", "order")

	return order, nil
}

// CancelOrder отменяет заказ в статусе pending или processing.
func (m *Memory) CancelOrder(ctx context.Context, userID, id, reason string) (model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.account(userID)
	i := m.orderIndex(userID, id)
	if i < 0 {
		return model.Order{}, ErrNotFound
	}

	o := &acc.orders[i]
	if o.Status != model.OrderStatusPending && o.Status != model.OrderStatusProcessing {
		return model.Order{}, ErrNotCancellable
	}
	o.Status = model.OrderStatusCancelled
	if reason != "" {
		o.Notes = strings.TrimSpace(o.Notes + "\nCancelled: " + reason)
	}
	o.UpdatedAt = m.now()
	return *o, nil
}

// SetOrderStatus меняет статус заказа. Используется для демонстрационных данных.
func (m *Memory) SetOrderStatus(ctx context.Context, userID, id string, status model.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.orderIndex(userID, id)
	if i < 0 {
		return ErrNotFound
	}
	o := &m.account(userID).orders[i]
	o.Status = status
	o.UpdatedAt = m.now()
	if status == model.OrderStatusShipped && o.TrackingNumber == "" {
		o.TrackingNumber = "TRK" + strings.ToUpper(o.ID[:8])
	}
	return nil
}

// Tracking возвращает сведения об отслеживании заказа.
func (m *Memory) Tracking(ctx context.Context, userID, id string) (model.Tracking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.orderIndex(userID, id)
	if i < 0 {
		return model.Tracking{}, ErrNotFound
	}
	o := m.account(userID).orders[i]

	events := []model.TrackingEvent{{
		Status:      string(model.OrderStatusPending),
		Description: "Order placed",
		Timestamp:   o.CreatedAt,
	}}
	if o.Status != model.OrderStatusPending {
		events = append(events, model.TrackingEvent{
			Status:      string(o.Status),
			Description: "Order " + string(o.Status),
			Timestamp:   o.UpdatedAt,
		})
	}

	t := model.Tracking{
		OrderID:        o.ID,
		Status:         o.Status,
		TrackingNumber: o.TrackingNumber,
		Events:         events,
	}
	if o.TrackingNumber != "" {
		t.Carrier = "Mock Express"
		eta := o.UpdatedAt.AddDate(0, 0, 3)
		t.EstimatedDelivery = &eta
	}
	return t, nil
}

func refundAmount(o model.Order, items []model.ReturnItemInput) decimal.Decimal {
	total := decimal.Zero
	for _, ri := range items {
		i := slices.IndexFunc(o.Items, func(it model.OrderItem) bool { return it.ProductID == ri.ProductID })
		if i < 0 {
			continue
		}
		qty := min(ri.Quantity, o.Items[i].Quantity)
		total = total.Add(o.Items[i].Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}
