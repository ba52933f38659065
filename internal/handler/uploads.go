package handler

import (
	"io"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxUploadMemory = 10 << 20
	uploadsPrefix   = "/api/uploads/"
)

type upload struct {
	contentType string
	data        []byte
}

type uploadStore struct {
	mu    sync.RWMutex
	files map[string]upload
}

func newUploadStore() *uploadStore {
	return &uploadStore{files: make(map[string]upload)}
}

func (s *uploadStore) put(name string, u upload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = u
}

func (s *uploadStore) get(name string) (upload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.files[name]
	return u, ok
}

// saveImages сохраняет файлы multipart-поля field и возвращает их адреса.
// Файлы, не распознанные как изображения, отклоняются целиком.
func (h *Handler) saveImages(w http.ResponseWriter, r *http.Request, field string) ([]string, bool) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			h.fail(w, http.StatusBadRequest, "Invalid multipart form")
			return nil, false
		}
	}

	headers := r.MultipartForm.File[field]
	pending := make(map[string]upload, len(headers))
	urls := make([]string, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.fail(w, http.StatusBadRequest, "Invalid multipart form")
			return nil, false
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.fail(w, http.StatusBadRequest, "Invalid multipart form")
			return nil, false
		}

		mt := mimetype.Detect(data)
		if !strings.HasPrefix(mt.String(), "image/") {
			h.fail(w, http.StatusUnprocessableEntity, "Validation failed", field+": "+fh.Filename+" is not an image")
			return nil, false
		}

		name := uuid.NewString() + mt.Extension()
		pending[name] = upload{contentType: mt.String(), data: data}
		urls = append(urls, uploadsPrefix+name)
	}

	for name, u := range pending {
		h.uploads.put(name, u)
	}
	h.logger.Debug("images stored", zap.String("field", field), zap.Int("count", len(urls)))
	return urls, true
}

// GetUpload отдаёт ранее загруженный файл.
func (h *Handler) GetUpload(w http.ResponseWriter, r *http.Request) {
	u, ok := h.uploads.get(path.Base(chi.URLParam(r, "name")))
	if !ok {
		h.fail(w, http.StatusNotFound, "File not found")
		return
	}
	w.Header().Set("Content-Type", u.contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(u.data)
}
