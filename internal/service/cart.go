package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/transport"
	"github.com/mmeshcher/storefront-client/internal/validation"
)

// CartService предоставляет доступ к корзине текущего пользователя.
type CartService struct {
	api Doer
}

// NewCartService создаёт сервис корзины.
func NewCartService(api Doer) *CartService {
	return &CartService{api: api}
}

// Get возвращает корзину.
func (s *CartService) Get(ctx context.Context) (*model.Cart, error) {
	return s.cart(ctx, transport.Request{Method: http.MethodGet, Path: "/cart"}, "Failed to fetch cart")
}

// AddItem добавляет товар в корзину. Корзина создаётся сервером при первом добавлении.
func (s *CartService) AddItem(ctx context.Context, in model.AddToCartInput) (*model.Cart, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.cart(ctx, transport.Request{Method: http.MethodPost, Path: "/cart", Body: in}, "Failed to add item to cart")
}

// UpdateItem меняет количество позиции корзины.
func (s *CartService) UpdateItem(ctx context.Context, itemID string, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		return nil, &validation.Error{Fields: []string{"quantity: must be at least 1"}}
	}
	return s.cart(ctx, transport.Request{
		Method: http.MethodPatch,
		Path:   path("cart/items", itemID),
		Body:   map[string]int{"quantity": quantity},
	}, "Failed to update cart item")
}

// RemoveItem удаляет позицию корзины.
func (s *CartService) RemoveItem(ctx context.Context, itemID string) (*model.Cart, error) {
	return s.cart(ctx, transport.Request{Method: http.MethodDelete, Path: path("cart/items", itemID)}, "Failed to remove cart item")
}

// Clear очищает корзину.
func (s *CartService) Clear(ctx context.Context) error {
	return exec(ctx, s.api, transport.Request{Method: http.MethodDelete, Path: "/cart"}, "Failed to clear cart")
}

// ApplyPromo применяет промокод к корзине.
func (s *CartService) ApplyPromo(ctx context.Context, code string) (*model.Cart, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, &validation.Error{Fields: []string{"code: is required"}}
	}
	return s.cart(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/cart/promo",
		Body:   map[string]string{"code": code},
	}, "Failed to apply promo code")
}

// RemovePromo снимает промокод с корзины.
func (s *CartService) RemovePromo(ctx context.Context) (*model.Cart, error) {
	return s.cart(ctx, transport.Request{Method: http.MethodDelete, Path: "/cart/promo"}, "Failed to remove promo code")
}

// Contains сообщает, есть ли товар в корзине. Загружает корзину целиком.
func (s *CartService) Contains(ctx context.Context, productID string) (bool, error) {
	c, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return c.Contains(productID), nil
}

func (s *CartService) cart(ctx context.Context, r transport.Request, fallback string) (*model.Cart, error) {
	c, err := call[model.Cart](ctx, s.api, r, fallback)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
