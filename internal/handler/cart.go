package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/storefront-client/internal/model"
)

type quantityRequest struct {
	Quantity int `json:"quantity" validate:"min=1"`
}

type promoRequest struct {
	Code string `json:"code" validate:"required"`
}

// GetCart возвращает корзину текущего пользователя.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.ok(w, http.StatusOK, h.repo.Cart(r.Context(), userID), "Cart fetched")
}

// AddToCart добавляет товар в корзину.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req model.AddToCartInput
	if !h.decode(w, r, &req) {
		return
	}

	cart, err := h.repo.AddToCart(r.Context(), userID, req)
	if err != nil {
		h.failErr(w, err, "Product")
		return
	}
	h.ok(w, http.StatusCreated, cart, "Item added to cart")
}

// UpdateCartItem меняет количество позиции.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req quantityRequest
	if !h.decode(w, r, &req) {
		return
	}

	cart, err := h.repo.UpdateCartItem(r.Context(), userID, chi.URLParam(r, "id"), req.Quantity)
	if err != nil {
		h.failErr(w, err, "Cart item")
		return
	}
	h.ok(w, http.StatusOK, cart, "Cart updated")
}

// RemoveCartItem удаляет позицию.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	cart, err := h.repo.RemoveCartItem(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.failErr(w, err, "Cart item")
		return
	}
	h.ok(w, http.StatusOK, cart, "Item removed from cart")
}

// ClearCart очищает корзину.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.repo.ClearCart(r.Context(), userID)
	h.ok(w, http.StatusOK, nil, "Cart cleared")
}

// ApplyPromo применяет промокод.
func (h *Handler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req promoRequest
	if !h.decode(w, r, &req) {
		return
	}

	cart, err := h.repo.ApplyPromo(r.Context(), userID, req.Code)
	if err != nil {
		h.failErr(w, err, "Promo code")
		return
	}
	h.ok(w, http.StatusOK, cart, "Promo code applied")
}

// RemovePromo снимает промокод.
func (h *Handler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.ok(w, http.StatusOK, h.repo.RemovePromo(r.Context(), userID), "Promo code removed")
}
