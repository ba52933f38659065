package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/storefront-client/internal/model"
)

// ListProducts возвращает страницу каталога.
// Параметры: category, search, minPrice, maxPrice, sort, featured, page, limit.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q, ok := h.productQuery(w, r)
	if !ok {
		return
	}
	q.Search = r.URL.Query().Get("search")
	h.ok(w, http.StatusOK, h.repo.Products(r.Context(), q), "Products fetched")
}

// SearchProducts выполняет поиск по параметру q.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q, ok := h.productQuery(w, r)
	if !ok {
		return
	}
	q.Search = r.URL.Query().Get("q")
	h.ok(w, http.StatusOK, h.repo.Products(r.Context(), q), "Products fetched")
}

// GetProduct возвращает товар.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.repo.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.failErr(w, err, "Product")
		return
	}
	h.ok(w, http.StatusOK, p, "Product fetched")
}

func (h *Handler) productQuery(w http.ResponseWriter, r *http.Request) (model.ProductQuery, bool) {
	v := r.URL.Query()
	q := model.ProductQuery{
		Category: v.Get("category"),
		Sort:     v.Get("sort"),
		Featured: v.Get("featured") == "true",
	}

	var errs []string
	for _, p := range []struct {
		name string
		dst  **decimal.Decimal
	}{
		{"minPrice", &q.MinPrice},
		{"maxPrice", &q.MaxPrice},
	} {
		raw := v.Get(p.name)
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			errs = append(errs, p.name+": must be a number")
			continue
		}
		*p.dst = &d
	}

	var okPage, okLimit bool
	q.Page, okPage = intParam(r, "page")
	q.Limit, okLimit = intParam(r, "limit")
	if !okPage {
		errs = append(errs, "page: must be a non-negative integer")
	}
	if !okLimit {
		errs = append(errs, "limit: must be a non-negative integer")
	}

	if len(errs) > 0 {
		h.fail(w, http.StatusBadRequest, "Invalid query parameters", errs...)
		return q, false
	}
	return q, true
}
