// Package handler содержит HTTP-обработчики эмулятора бэкенда витрины.
//
// Успешные ответы оборачиваются в {"data": ..., "message": ...}, ошибки
// возвращаются как {"message": ..., "errors": [...]} с кодом статуса.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mmeshcher/storefront-client/internal/middleware"
	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/repository"
	"github.com/mmeshcher/storefront-client/internal/validation"
)

// Repository определяет хранилище, используемое HTTP-обработчиками.
type Repository interface {
	Products(ctx context.Context, q model.ProductQuery) model.ProductPage
	Product(ctx context.Context, id string) (model.Product, error)

	Cart(ctx context.Context, userID string) model.Cart
	AddToCart(ctx context.Context, userID string, in model.AddToCartInput) (model.Cart, error)
	UpdateCartItem(ctx context.Context, userID, itemID string, quantity int) (model.Cart, error)
	RemoveCartItem(ctx context.Context, userID, itemID string) (model.Cart, error)
	ClearCart(ctx context.Context, userID string)
	ApplyPromo(ctx context.Context, userID, code string) (model.Cart, error)
	RemovePromo(ctx context.Context, userID string) model.Cart

	Orders(ctx context.Context, userID string, status model.OrderStatus) []model.Order
	Order(ctx context.Context, userID, id string) (model.Order, error)
	CreateOrder(ctx context.Context, userID string, in model.CreateOrderInput) (model.Order, error)
	CancelOrder(ctx context.Context, userID, id, reason string) (model.Order, error)
	Tracking(ctx context.Context, userID, id string) (model.Tracking, error)

	Addresses(ctx context.Context, userID string) []model.Address
	Address(ctx context.Context, userID, id string) (model.Address, error)
	CreateAddress(ctx context.Context, userID string, in model.AddressInput) model.Address
	UpdateAddress(ctx context.Context, userID, id string, in model.AddressInput) (model.Address, error)
	DeleteAddress(ctx context.Context, userID, id string) error
	SetDefaultAddress(ctx context.Context, userID, id string) (model.Address, error)

	Profile(ctx context.Context, userID string) model.UserProfile
	SaveProfile(ctx context.Context, userID string, in model.ProfileInput) model.UserProfile
	UpdateProfile(ctx context.Context, userID string, in model.ProfileInput) model.UserProfile
	SetAvatar(ctx context.Context, userID, url string) model.UserProfile

	Wishlist(ctx context.Context, userID string) []model.WishlistItem
	AddToWishlist(ctx context.Context, userID, productID string) (model.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, userID, productID string) error

	Notifications(ctx context.Context, userID string) []model.Notification
	MarkNotificationRead(ctx context.Context, userID, id string) error

	Returns(ctx context.Context, userID string) []model.Return
	Return(ctx context.Context, userID, id string) (model.Return, error)
	CreateReturn(ctx context.Context, userID string, in model.ReturnInput, images []string) (model.Return, error)
	UpdateReturn(ctx context.Context, userID, id string, in model.ReturnUpdateInput) (model.Return, error)
	AddReturnImages(ctx context.Context, userID, id string, images []string) (model.Return, error)
}

// Handler реализует HTTP-обработчики эмулятора.
type Handler struct {
	repo           Repository
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
	uploads        *uploadStore
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(repo Repository, logger *zap.Logger, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		repo:           repo,
		logger:         logger,
		authMiddleware: auth,
		uploads:        newUploadStore(),
	}
}

type successResponse struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
}

type errorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}

func (h *Handler) ok(w http.ResponseWriter, status int, data any, message string) {
	h.writeJSON(w, status, successResponse{Data: data, Message: message})
}

func (h *Handler) fail(w http.ResponseWriter, status int, message string, errs ...string) {
	if errs == nil {
		errs = []string{}
	}
	h.writeJSON(w, status, errorResponse{Message: message, Errors: errs})
}

// failErr переводит ошибку хранилища в ответ. what подставляется
// в сообщение для ненайденной сущности.
func (h *Handler) failErr(w http.ResponseWriter, err error, what string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		h.fail(w, http.StatusUnprocessableEntity, "Validation failed", verr.Fields...)
	case errors.Is(err, repository.ErrNotFound):
		h.fail(w, http.StatusNotFound, what+" not found")
	case errors.Is(err, repository.ErrInvalidPromo):
		h.fail(w, http.StatusBadRequest, "Invalid promo code")
	case errors.Is(err, repository.ErrEmptyCart):
		h.fail(w, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, repository.ErrInvalidQuantity):
		h.fail(w, http.StatusUnprocessableEntity, "Validation failed", "quantity: must be at least 1")
	case errors.Is(err, repository.ErrOutOfStock):
		h.fail(w, http.StatusConflict, "Insufficient stock")
	case errors.Is(err, repository.ErrNotCancellable):
		h.fail(w, http.StatusConflict, what+" cannot be cancelled in its current status")
	default:
		h.logger.Error("request error", zap.Error(err))
		h.fail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// decode разбирает JSON-тело запроса и проверяет его по тегам validate.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validation.Struct(v); err != nil {
		h.failErr(w, err, "")
		return false
	}
	return true
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		h.fail(w, http.StatusUnauthorized, "Unauthorized")
	}
	return id, ok
}

func intParam(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
