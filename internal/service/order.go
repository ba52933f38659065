package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/transport"
	"github.com/mmeshcher/storefront-client/internal/validation"
)

// OrderFilter задаёт фильтр и пагинацию истории заказов.
type OrderFilter struct {
	Status model.OrderStatus
	Page   int
	Limit  int
}

// OrderService предоставляет доступ к заказам.
type OrderService struct {
	api Doer
}

// NewOrderService создаёт сервис заказов.
func NewOrderService(api Doer) *OrderService {
	return &OrderService{api: api}
}

// List возвращает заказы пользователя, новые первыми.
func (s *OrderService) List(ctx context.Context, f OrderFilter) ([]model.Order, error) {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	return call[[]model.Order](ctx, s.api, transport.Request{
		Method: http.MethodGet,
		Path:   "/orders",
		Query:  pageQuery(q, f.Page, f.Limit),
	}, "Failed to fetch orders")
}

// Get возвращает заказ по идентификатору.
func (s *OrderService) Get(ctx context.Context, id string) (*model.Order, error) {
	return s.order(ctx, transport.Request{Method: http.MethodGet, Path: path("orders", id)}, "Failed to fetch order")
}

// Create оформляет заказ из текущей корзины.
func (s *OrderService) Create(ctx context.Context, in model.CreateOrderInput) (*model.Order, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.order(ctx, transport.Request{Method: http.MethodPost, Path: "/orders", Body: in}, "Failed to create order")
}

// Cancel отменяет заказ.
func (s *OrderService) Cancel(ctx context.Context, id, reason string) (*model.Order, error) {
	return s.order(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   path("orders", id, "cancel"),
		Body:   map[string]string{"reason": reason},
	}, "Failed to cancel order")
}

// Track возвращает сведения о доставке заказа.
func (s *OrderService) Track(ctx context.Context, id string) (*model.Tracking, error) {
	t, err := call[model.Tracking](ctx, s.api, transport.Request{
		Method: http.MethodGet,
		Path:   path("orders", id, "track"),
	}, "Failed to track order")
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *OrderService) order(ctx context.Context, r transport.Request, fallback string) (*model.Order, error) {
	o, err := call[model.Order](ctx, s.api, r, fallback)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
