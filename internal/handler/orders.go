package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/storefront-client/internal/model"
)

type cancelRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// GetOrders возвращает заказы текущего пользователя.
// Параметры: status, page, limit.
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	page, okPage := intParam(r, "page")
	limit, okLimit := intParam(r, "limit")
	if !okPage || !okLimit {
		h.fail(w, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	orders := h.repo.Orders(r.Context(), userID, model.OrderStatus(r.URL.Query().Get("status")))
	h.ok(w, http.StatusOK, paginate(orders, page, limit), "Orders fetched")
}

// GetOrder возвращает заказ.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	order, err := h.repo.Order(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.failErr(w, err, "Order")
		return
	}
	h.ok(w, http.StatusOK, order, "Order fetched")
}

// CreateOrder оформляет заказ из корзины.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req model.CreateOrderInput
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.repo.CreateOrder(r.Context(), userID, req)
	if err != nil {
		h.failErr(w, err, "Address")
		return
	}

	h.logger.Info("order created", zap.String("userID", userID), zap.String("order", order.ID))
	h.ok(w, http.StatusCreated, order, "Order placed successfully")
}

// CancelOrder отменяет заказ.
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req cancelRequest
	if r.ContentLength != 0 && !h.decode(w, r, &req) {
		return
	}

	order, err := h.repo.CancelOrder(r.Context(), userID, chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		h.failErr(w, err, "Order")
		return
	}
	h.ok(w, http.StatusOK, order, "Order cancelled")
}

// TrackOrder возвращает сведения о доставке.
func (h *Handler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	t, err := h.repo.Tracking(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.failErr(w, err, "Order")
		return
	}
	h.ok(w, http.StatusOK, t, "Tracking fetched")
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	from := min((page-1)*limit, len(items))
	to := min(from+limit, len(items))
	return items[from:to]
}
