package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/validation"
)

// GetReturns возвращает заявки на возврат.
func (h *Handler) GetReturns(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.ok(w, http.StatusOK, h.repo.Returns(r.Context(), userID), "Returns fetched")
}

// GetReturn возвращает заявку на возврат.
func (h *Handler) GetReturn(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	ret, err := h.repo.Return(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.failErr(w, err, "Return")
		return
	}
	h.ok(w, http.StatusOK, ret, "Return fetched")
}

// CreateReturn создаёт заявку. Принимает JSON или multipart-форму с полями
// orderId, reason, description, items (JSON) и файлами images.
func (h *Handler) CreateReturn(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var (
		req    model.ReturnInput
		images []string
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			h.fail(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		req.OrderID = r.FormValue("orderId")
		req.Reason = r.FormValue("reason")
		req.Description = r.FormValue("description")
		if raw := r.FormValue("items"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Items); err != nil {
				h.fail(w, http.StatusBadRequest, "Invalid request body", "items: must be a JSON array")
				return
			}
		}
		if err := validation.Struct(req); err != nil {
			h.failErr(w, err, "")
			return
		}
		if images, ok = h.saveImages(w, r, "images"); !ok {
			return
		}
	} else if !h.decode(w, r, &req) {
		return
	}

	ret, err := h.repo.CreateReturn(r.Context(), userID, req, images)
	if err != nil {
		h.failErr(w, err, "Order")
		return
	}
	h.ok(w, http.StatusCreated, ret, "Return request submitted")
}

// UpdateReturn изменяет заявку на возврат.
func (h *Handler) UpdateReturn(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req model.ReturnUpdateInput
	if !h.decode(w, r, &req) {
		return
	}

	ret, err := h.repo.UpdateReturn(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		h.failErr(w, err, "Return")
		return
	}
	h.ok(w, http.StatusOK, ret, "Return updated")
}

// UploadReturnImages прикладывает изображения к заявке.
func (h *Handler) UploadReturnImages(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	images, ok := h.saveImages(w, r, "images")
	if !ok {
		return
	}
	if len(images) == 0 {
		h.fail(w, http.StatusUnprocessableEntity, "Validation failed", "images: must contain at least 1 item(s)")
		return
	}

	ret, err := h.repo.AddReturnImages(r.Context(), userID, chi.URLParam(r, "id"), images)
	if err != nil {
		h.failErr(w, err, "Return")
		return
	}
	h.ok(w, http.StatusOK, ret, "Images uploaded")
}
