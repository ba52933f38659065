package store

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/pricing"
)

// TotalItems возвращает количество единиц товара в корзине.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.TotalItems()
}

// Subtotal возвращает сумму позиций корзины, рассчитанную сервером.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return decimal.Zero
	}
	return s.cart.Subtotal
}

// TotalPrice возвращает итог корзины с учётом промокода. Значение справочное:
// сумму списания определяет заказ, созданный сервером.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return decimal.Zero
	}
	return pricing.Apply(s.cart.Total, s.promo)
}

// Discount возвращает размер скидки по промокоду.
func (s *Store) Discount() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return decimal.Zero
	}
	return pricing.Discount(s.cart.Total, s.promo)
}

// UnreadCount возвращает количество непрочитанных уведомлений.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, it := range s.notifications {
		if !it.Read {
			n++
		}
	}
	return n
}

// IsInCart сообщает, есть ли товар в загруженной корзине.
func (s *Store) IsInCart(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Contains(productID)
}

// DefaultAddress возвращает адрес по умолчанию из загруженного списка.
func (s *Store) DefaultAddress() *model.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.addresses, func(a model.Address) bool { return a.IsDefault })
	if i < 0 {
		return nil
	}
	a := s.addresses[i]
	return &a
}

// IsInWishlist спрашивает сервер, есть ли товар в списке желаний.
// Любая ошибка трактуется как отрицательный ответ.
func (s *Store) IsInWishlist(ctx context.Context, productID string) bool {
	if _, ok := s.session(); !ok {
		return false
	}
	in, err := s.services.User.InWishlist(ctx, productID)
	if err != nil {
		s.logger.Debug("wishlist check failed", zap.String("productID", productID), zap.Error(err))
		return false
	}
	return in
}

func (s *Store) inLocalWishlist(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.ContainsFunc(s.wishlist, func(w model.WishlistItem) bool { return w.ProductID == productID })
}
