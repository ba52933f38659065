package repository

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/mmeshcher/storefront-client/internal/model"
)

// Profile возвращает профиль пользователя.
func (m *Memory) Profile(ctx context.Context, userID string) model.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.account(userID).profile
}

// SaveProfile заполняет профиль пользователя целиком.
func (m *Memory) SaveProfile(ctx context.Context, userID string, in model.ProfileInput) model.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := &m.account(userID).profile
	p.Email = in.Email
	p.FirstName = in.FirstName
	p.LastName = in.LastName
	p.Phone = in.Phone
	return *p
}

// UpdateProfile изменяет непустые поля профиля.
func (m *Memory) UpdateProfile(ctx context.Context, userID string, in model.ProfileInput) model.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := &m.account(userID).profile
	if in.Email != "" {
		p.Email = in.Email
	}
	if in.FirstName != "" {
		p.FirstName = in.FirstName
	}
	if in.LastName != "" {
		p.LastName = in.LastName
	}
	if in.Phone != "" {
		p.Phone = in.Phone
	}
	return *p
}

// SetAvatar сохраняет ссылку на загруженный аватар.
func (m *Memory) SetAvatar(ctx context.Context, userID, url string) model.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := &m.account(userID).profile
	p.AvatarURL = url
	return *p
}

// Wishlist возвращает список желаний пользователя.
func (m *Memory) Wishlist(ctx context.Context, userID string) []model.WishlistItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.WishlistItem{}, m.account(userID).wishlist...)
}

// AddToWishlist добавляет товар в список желаний. Повторное добавление
// ничего не меняет.
func (m *Memory) AddToWishlist(ctx context.Context, userID, productID string) (model.WishlistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.product(productID)
	if !ok {
		return model.WishlistItem{}, ErrNotFound
	}

	acc := m.account(userID)
	if i := slices.IndexFunc(acc.wishlist, func(w model.WishlistItem) bool { return w.ProductID == productID }); i >= 0 {
		return acc.wishlist[i], nil
	}

	item := model.WishlistItem{ID: uuid.NewString(), ProductID: productID, Product: &p, AddedAt: m.now()}
	acc.wishlist = append(acc.wishlist, item)
	return item, nil
}

// RemoveFromWishlist удаляет товар из списка желаний.
func (m *Memory) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.account(userID)
	i := slices.IndexFunc(acc.wishlist, func(w model.WishlistItem) bool { return w.ProductID == productID })
	if i < 0 {
		return ErrNotFound
	}
	acc.wishlist = slices.Delete(acc.wishlist, i, i+1)
	return nil
}

// Notifications возвращает уведомления пользователя, новые первыми.
func (m *Memory) Notifications(ctx context.Context, userID string) []model.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Notification{}, m.account(userID).notifications...)
}

// MarkNotificationRead отмечает уведомление прочитанным.
func (m *Memory) MarkNotificationRead(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.account(userID)
	i := slices.IndexFunc(acc.notifications, func(n model.Notification) bool { return n.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	acc.notifications[i].Read = true
	return nil
}

func (m *Memory) notifyLocked(acc *account, title, message, kind string) {
	n := model.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Type:      kind,
		CreatedAt: m.now(),
	}
	acc.notifications = append([]model.Notification{n}, acc.notifications...)
}
