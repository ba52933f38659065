package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/mmeshcher/storefront-client/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware эмулятора.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/search", h.SearchProducts)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/uploads/{name}", h.GetUpload)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)

			r.Get("/cart", h.GetCart)
			r.Post("/cart", h.AddToCart)
			r.Delete("/cart", h.ClearCart)
			r.Patch("/cart/items/{id}", h.UpdateCartItem)
			r.Delete("/cart/items/{id}", h.RemoveCartItem)
			r.Post("/cart/promo", h.ApplyPromo)
			r.Delete("/cart/promo", h.RemovePromo)

			r.Get("/orders", h.GetOrders)
			r.Post("/orders", h.CreateOrder)
			r.Get("/orders/{id}", h.GetOrder)
			r.Post("/orders/{id}/cancel", h.CancelOrder)
			r.Get("/orders/{id}/track", h.TrackOrder)

			r.Get("/addresses", h.GetAddresses)
			r.Post("/addresses", h.CreateAddress)
			r.Get("/addresses/{id}", h.GetAddress)
			r.Patch("/addresses/{id}", h.UpdateAddress)
			r.Delete("/addresses/{id}", h.DeleteAddress)
			r.Post("/addresses/{id}/default", h.SetDefaultAddress)

			r.Get("/wishlist", h.GetWishlist)
			r.Post("/wishlist", h.AddToWishlist)
			r.Delete("/wishlist/{productId}", h.RemoveFromWishlist)

			r.Get("/user/profile", h.GetProfile)
			r.Post("/user/profile", h.CreateProfile)
			r.Patch("/user/profile", h.UpdateProfile)
			r.Post("/user/avatar", h.UploadAvatar)
			r.Get("/user/notifications", h.GetNotifications)
			r.Post("/user/notifications/{id}/read", h.MarkNotificationRead)

			r.Get("/returns", h.GetReturns)
			r.Post("/returns", h.CreateReturn)
			r.Get("/returns/{id}", h.GetReturn)
			r.Patch("/returns/{id}", h.UpdateReturn)
			r.Post("/returns/{id}/images", h.UploadReturnImages)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.fail(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.fail(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	return r
}
