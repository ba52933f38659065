package store

import (
	"context"
	"slices"

	"github.com/mmeshcher/storefront-client/internal/model"
)

// AddToCart добавляет товар в корзину.
func (s *Store) AddToCart(ctx context.Context, in model.AddToCartInput) error {
	return s.mutate(OpCart, func(gen uint64) (string, error) {
		if _, err := s.services.Cart.AddItem(ctx, in); err != nil {
			return "", err
		}
		s.loadCart(ctx, gen)
		return "Added to cart", nil
	})
}

// UpdateCartItem меняет количество позиции. Количество меньше единицы удаляет позицию.
func (s *Store) UpdateCartItem(ctx context.Context, itemID string, quantity int) error {
	if quantity < 1 {
		return s.RemoveFromCart(ctx, itemID)
	}
	return s.mutate(OpCart, func(gen uint64) (string, error) {
		if _, err := s.services.Cart.UpdateItem(ctx, itemID, quantity); err != nil {
			return "", err
		}
		s.loadCart(ctx, gen)
		return "Cart updated", nil
	})
}

// RemoveFromCart удаляет позицию корзины.
func (s *Store) RemoveFromCart(ctx context.Context, itemID string) error {
	return s.mutate(OpCart, func(gen uint64) (string, error) {
		if _, err := s.services.Cart.RemoveItem(ctx, itemID); err != nil {
			return "", err
		}
		s.loadCart(ctx, gen)
		return "Removed from cart", nil
	})
}

// ClearCart очищает корзину и снимает промокод.
func (s *Store) ClearCart(ctx context.Context) error {
	return s.mutate(OpCart, func(gen uint64) (string, error) {
		if err := s.services.Cart.Clear(ctx); err != nil {
			return "", err
		}
		s.commit(gen, "promo", func() { s.promo = nil })
		s.loadCart(ctx, gen)
		return "Cart cleared", nil
	})
}

// ToggleWishlist добавляет товар в список желаний или удаляет из него,
// опираясь на загруженный список.
func (s *Store) ToggleWishlist(ctx context.Context, productID string) error {
	return s.mutate(OpWishlist, func(gen uint64) (string, error) {
		if s.inLocalWishlist(productID) {
			if err := s.services.User.RemoveFromWishlist(ctx, productID); err != nil {
				return "", err
			}
			s.loadWishlist(ctx, gen)
			return "Removed from wishlist", nil
		}

		if err := s.services.User.AddToWishlist(ctx, productID); err != nil {
			return "", err
		}
		s.loadWishlist(ctx, gen)
		return "Added to wishlist", nil
	})
}

// AddAddress добавляет адрес.
func (s *Store) AddAddress(ctx context.Context, in model.AddressInput) (*model.Address, error) {
	var created *model.Address
	err := s.mutate(OpAddress, func(gen uint64) (string, error) {
		a, err := s.services.Addresses.Create(ctx, in)
		if err != nil {
			return "", err
		}
		created = a
		s.loadAddresses(ctx, gen)
		return "Address added", nil
	})
	return created, err
}

// UpdateAddress изменяет адрес.
func (s *Store) UpdateAddress(ctx context.Context, id string, in model.AddressInput) error {
	return s.mutate(OpAddress, func(gen uint64) (string, error) {
		if _, err := s.services.Addresses.Update(ctx, id, in); err != nil {
			return "", err
		}
		s.loadAddresses(ctx, gen)
		return "Address updated", nil
	})
}

// DeleteAddress удаляет адрес.
func (s *Store) DeleteAddress(ctx context.Context, id string) error {
	return s.mutate(OpAddress, func(gen uint64) (string, error) {
		if err := s.services.Addresses.Delete(ctx, id); err != nil {
			return "", err
		}
		s.loadAddresses(ctx, gen)
		return "Address deleted", nil
	})
}

// SetDefaultAddress делает адрес адресом по умолчанию. Признак у остальных
// адресов определяет сервер, поэтому список перечитывается.
func (s *Store) SetDefaultAddress(ctx context.Context, id string) error {
	return s.mutate(OpAddress, func(gen uint64) (string, error) {
		if err := s.services.Addresses.SetDefault(ctx, id); err != nil {
			return "", err
		}
		s.loadAddresses(ctx, gen)
		return "Default address updated", nil
	})
}

// CreateOrder оформляет заказ из текущей корзины. Без товаров в корзине
// завершается ошибкой ErrEmptyCart без обращения к сети. Новый заказ
// добавляется в начало истории без перечитывания.
func (s *Store) CreateOrder(ctx context.Context, in model.CreateOrderInput) (*model.Order, error) {
	var created *model.Order
	err := s.mutate(OpOrder, func(gen uint64) (string, error) {
		s.mu.RLock()
		empty := s.cart.IsEmpty()
		promo := s.promo
		s.mu.RUnlock()
		if empty {
			return "", ErrEmptyCart
		}
		if in.PromoCode == "" && promo != nil {
			in.PromoCode = promo.Code
		}

		order, err := s.services.Orders.Create(ctx, in)
		if err != nil {
			return "", err
		}
		created = order

		s.commit(gen, "order", func() {
			s.orders = append([]model.Order{*order}, s.orders...)
			s.promo = nil
			s.cart = nil
		})
		s.loadCart(ctx, gen)
		return "Order placed successfully", nil
	})
	return created, err
}

// CancelOrder отменяет заказ.
func (s *Store) CancelOrder(ctx context.Context, id, reason string) error {
	return s.mutate(OpOrder, func(gen uint64) (string, error) {
		if _, err := s.services.Orders.Cancel(ctx, id, reason); err != nil {
			return "", err
		}
		s.loadOrders(ctx, gen)
		return "Order cancelled", nil
	})
}

// CreateReturn создаёт заявку на возврат.
func (s *Store) CreateReturn(ctx context.Context, in model.ReturnInput, images []model.Attachment) (*model.Return, error) {
	var created *model.Return
	err := s.mutate(OpReturn, func(gen uint64) (string, error) {
		r, err := s.services.Returns.Create(ctx, in, images)
		if err != nil {
			return "", err
		}
		created = r
		s.loadReturns(ctx, gen)
		return "Return request submitted", nil
	})
	return created, err
}

// CancelReturn отзывает заявку на возврат.
func (s *Store) CancelReturn(ctx context.Context, id string) error {
	return s.mutate(OpReturn, func(gen uint64) (string, error) {
		if _, err := s.services.Returns.Cancel(ctx, id); err != nil {
			return "", err
		}
		s.loadReturns(ctx, gen)
		return "Return request cancelled", nil
	})
}

// ApplyPromo применяет промокод. Параметры скидки берутся из ответа сервера,
// а при их отсутствии из локального каталога.
func (s *Store) ApplyPromo(ctx context.Context, code string) error {
	return s.mutate(OpPromo, func(gen uint64) (string, error) {
		cart, err := s.services.Cart.ApplyPromo(ctx, code)
		if err != nil {
			return "", err
		}
		applied := s.promos.Resolve(code, cart.Promo)
		s.commit(gen, "promo", func() { s.promo = applied })
		s.loadCart(ctx, gen)
		return "Promo code applied", nil
	})
}

// RemovePromo снимает промокод.
func (s *Store) RemovePromo(ctx context.Context) error {
	return s.mutate(OpPromo, func(gen uint64) (string, error) {
		if _, err := s.services.Cart.RemovePromo(ctx); err != nil {
			return "", err
		}
		s.commit(gen, "promo", func() { s.promo = nil })
		s.loadCart(ctx, gen)
		return "Promo code removed", nil
	})
}

// MarkNotificationRead отмечает уведомление прочитанным и обновляет его
// в локальном списке без перечитывания. Повторный вызов ничего не меняет.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	return s.mutate(OpNotification, func(gen uint64) (string, error) {
		if err := s.services.User.MarkNotificationRead(ctx, id); err != nil {
			return "", err
		}
		s.commit(gen, "notification", func() {
			i := slices.IndexFunc(s.notifications, func(n model.Notification) bool { return n.ID == id })
			if i < 0 || s.notifications[i].Read {
				return
			}
			s.notifications = slices.Clone(s.notifications)
			s.notifications[i].Read = true
		})
		return "Notification marked as read", nil
	})
}

// UpdateProfile изменяет профиль.
func (s *Store) UpdateProfile(ctx context.Context, in model.ProfileInput) error {
	return s.mutate(OpProfile, func(gen uint64) (string, error) {
		if _, err := s.services.User.UpdateProfile(ctx, in); err != nil {
			return "", err
		}
		s.loadProfile(ctx, gen)
		return "Profile updated", nil
	})
}

// UploadAvatar загружает аватар.
func (s *Store) UploadAvatar(ctx context.Context, file model.Attachment) error {
	return s.mutate(OpProfile, func(gen uint64) (string, error) {
		if _, err := s.services.User.UploadAvatar(ctx, file); err != nil {
			return "", err
		}
		s.loadProfile(ctx, gen)
		return "Avatar updated", nil
	})
}
