package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/storefront-client/internal/model"
)

type wishlistRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// GetAddresses возвращает адреса текущего пользователя.
func (h *Handler) GetAddresses(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.ok(w, http.StatusOK, h.repo.Addresses(r.Context(), userID), "Addresses fetched")
}

// GetAddress возвращает адрес.
func (h *Handler) GetAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	a, err := h.repo.Address(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.failErr(w, err, "Address")
		return
	}
	h.ok(w, http.StatusOK, a, "Address fetched")
}

// CreateAddress добавляет адрес.
func (h *Handler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req model.AddressInput
	if !h.decode(w, r, &req) {
		return
	}
	h.ok(w, http.StatusCreated, h.repo.CreateAddress(r.Context(), userID, req), "Address added")
}

// UpdateAddress изменяет адрес.
func (h *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req model.AddressInput
	if !h.decode(w, r, &req) {
		return
	}

	a, err := h.repo.UpdateAddress(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		h.failErr(w, err, "Address")
		return
	}
	h.ok(w, http.StatusOK, a, "Address updated")
}

// DeleteAddress удаляет адрес.
func (h *Handler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.repo.DeleteAddress(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.failErr(w, err, "Address")
		return
	}
	h.ok(w, http.StatusOK, nil, "Address deleted")
}

// SetDefaultAddress делает адрес адресом по умолчанию.
func (h *Handler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	a, err := h.repo.SetDefaultAddress(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.failErr(w, err, "Address")
		return
	}
	h.ok(w, http.StatusOK, a, "Default address updated")
}

// GetProfile возвращает профиль.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.ok(w, http.StatusOK, h.repo.Profile(r.Context(), userID), "Profile fetched")
}

// CreateProfile заполняет профиль.
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req model.ProfileInput
	if !h.decode(w, r, &req) {
		return
	}
	h.ok(w, http.StatusCreated, h.repo.SaveProfile(r.Context(), userID, req), "Profile created")
}

// UpdateProfile изменяет профиль.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req model.ProfileInput
	if !h.decode(w, r, &req) {
		return
	}
	h.ok(w, http.StatusOK, h.repo.UpdateProfile(r.Context(), userID, req), "Profile updated")
}

// UploadAvatar принимает multipart-поле avatar.
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	urls, ok := h.saveImages(w, r, "avatar")
	if !ok {
		return
	}
	if len(urls) != 1 {
		h.fail(w, http.StatusUnprocessableEntity, "Validation failed", "avatar: is required")
		return
	}
	h.ok(w, http.StatusOK, h.repo.SetAvatar(r.Context(), userID, urls[0]), "Avatar updated")
}

// GetWishlist возвращает список желаний.
func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.ok(w, http.StatusOK, h.repo.Wishlist(r.Context(), userID), "Wishlist fetched")
}

// AddToWishlist добавляет товар в список желаний.
func (h *Handler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req wishlistRequest
	if !h.decode(w, r, &req) {
		return
	}

	item, err := h.repo.AddToWishlist(r.Context(), userID, req.ProductID)
	if err != nil {
		h.failErr(w, err, "Product")
		return
	}
	h.ok(w, http.StatusCreated, item, "Added to wishlist")
}

// RemoveFromWishlist удаляет товар из списка желаний.
func (h *Handler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.repo.RemoveFromWishlist(r.Context(), userID, chi.URLParam(r, "productId")); err != nil {
		h.failErr(w, err, "Wishlist item")
		return
	}
	h.ok(w, http.StatusOK, nil, "Removed from wishlist")
}

// GetNotifications возвращает уведомления.
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.ok(w, http.StatusOK, h.repo.Notifications(r.Context(), userID), "Notifications fetched")
}

// MarkNotificationRead отмечает уведомление прочитанным.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.repo.MarkNotificationRead(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.failErr(w, err, "Notification")
		return
	}
	h.ok(w, http.StatusOK, nil, "Notification marked as read")
}
