package repository

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/mmeshcher/storefront-client/internal/model"
)

// Returns возвращает заявки пользователя на возврат, новые первыми.
func (m *Memory) Returns(ctx context.Context, userID string) []model.Return {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Return{}, m.account(userID).returns...)
}

// Return возвращает заявку на возврат.
func (m *Memory) Return(ctx context.Context, userID, id string) (model.Return, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.account(userID)
	i := returnIndex(acc, id)
	if i < 0 {
		return model.Return{}, ErrNotFound
	}
	return acc.returns[i], nil
}

func returnIndex(acc *account, id string) int {
	return slices.IndexFunc(acc.returns, func(r model.Return) bool { return r.ID == id })
}

// CreateReturn создаёт заявку на возврат по заказу пользователя. images
// содержит ссылки на уже сохранённые изображения.
func (m *Memory) CreateReturn(ctx context.Context, userID string, in model.ReturnInput, images []string) (model.Return, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.account(userID)
	oi := m.orderIndex(userID, in.OrderID)
	if oi < 0 {
		return model.Return{}, ErrNotFound
	}
	order := acc.orders[oi]
	if order.Status == model.OrderStatusCancelled {
		return model.Return{}, ErrNotCancellable
	}

	items := make([]model.ReturnItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, model.ReturnItem{ProductID: it.ProductID, Quantity: it.Quantity, Reason: it.Reason})
	}

	now := m.now()
	r := model.Return{
		ID:           uuid.NewString(),
		OrderID:      in.OrderID,
		UserID:       userID,
		Items:        items,
		Reason:       in.Reason,
		Description:  in.Description,
		Images:       slices.Clone(images),
		Status:       model.ReturnStatusRequested,
		RefundAmount: refundAmount(order, in.Items),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	acc.returns = append([]model.Return{r}, acc.returns...)
	return r, nil
}

// UpdateReturn изменяет описание или статус заявки. Пользователь может только
// отозвать заявку, пока она в статусе requested.
func (m *Memory) UpdateReturn(ctx context.Context, userID, id string, in model.ReturnUpdateInput) (model.Return, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.account(userID)
	i := returnIndex(acc, id)
	if i < 0 {
		return model.Return{}, ErrNotFound
	}

	r := &acc.returns[i]
	if in.Status != nil {
		if *in.Status != model.ReturnStatusCancelled || r.Status != model.ReturnStatusRequested {
			return model.Return{}, ErrNotCancellable
		}
		r.Status = *in.Status
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	r.UpdatedAt = m.now()
	return *r, nil
}

// AddReturnImages добавляет ссылки на изображения к заявке.
func (m *Memory) AddReturnImages(ctx context.Context, userID, id string, images []string) (model.Return, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.account(userID)
	i := returnIndex(acc, id)
	if i < 0 {
		return model.Return{}, ErrNotFound
	}

	r := &acc.returns[i]
	r.Images = append(r.Images, images...)
	r.UpdatedAt = m.now()
	return *r, nil
}
