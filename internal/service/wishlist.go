package service

import (
	"context"
	"net/http"

	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/transport"
)

// Wishlist возвращает список желаний.
func (s *UserService) Wishlist(ctx context.Context) ([]model.WishlistItem, error) {
	return call[[]model.WishlistItem](ctx, s.api, transport.Request{Method: http.MethodGet, Path: "/wishlist"}, "Failed to fetch wishlist")
}

// AddToWishlist добавляет товар в список желаний.
func (s *UserService) AddToWishlist(ctx context.Context, productID string) error {
	return exec(ctx, s.api, transport.Request{
		Method: http.MethodPost,
		Path:   "/wishlist",
		Body:   map[string]string{"productId": productID},
	}, "Failed to add to wishlist")
}

// RemoveFromWishlist удаляет товар из списка желаний.
func (s *UserService) RemoveFromWishlist(ctx context.Context, productID string) error {
	return exec(ctx, s.api, transport.Request{Method: http.MethodDelete, Path: path("wishlist", productID)}, "Failed to remove from wishlist")
}

// InWishlist сообщает, есть ли товар в списке желаний. Загружает список целиком.
func (s *UserService) InWishlist(ctx context.Context, productID string) (bool, error) {
	items, err := s.Wishlist(ctx)
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}
