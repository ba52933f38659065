package service

import (
	"context"
	"net/http"

	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/transport"
	"github.com/mmeshcher/storefront-client/internal/validation"
)

// ReturnService предоставляет доступ к заявкам на возврат.
type ReturnService struct {
	api Doer
}

// NewReturnService создаёт сервис возвратов.
func NewReturnService(api Doer) *ReturnService {
	return &ReturnService{api: api}
}

// List возвращает заявки пользователя.
func (s *ReturnService) List(ctx context.Context) ([]model.Return, error) {
	return call[[]model.Return](ctx, s.api, transport.Request{Method: http.MethodGet, Path: "/returns"}, "Failed to fetch returns")
}

// Get возвращает заявку по идентификатору.
func (s *ReturnService) Get(ctx context.Context, id string) (*model.Return, error) {
	return s.ret(ctx, transport.Request{Method: http.MethodGet, Path: path("returns", id)}, "Failed to fetch return")
}

// Create создаёт заявку. С изображениями запрос уходит multipart-формой,
// список позиций передаётся одним полем items в JSON.
func (s *ReturnService) Create(ctx context.Context, in model.ReturnInput, images []model.Attachment) (*model.Return, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	if len(images) == 0 {
		return s.ret(ctx, transport.Request{Method: http.MethodPost, Path: "/returns", Body: in}, "Failed to create return")
	}

	form := transport.NewForm().
		Field("orderId", in.OrderID).
		Field("reason", in.Reason).
		Field("description", in.Description)
	if err := form.JSONField("items", in.Items); err != nil {
		return nil, err
	}
	attach(form, "images", images)

	return s.ret(ctx, transport.Request{Method: http.MethodPost, Path: "/returns", Form: form}, "Failed to create return")
}

// Update изменяет заявку.
func (s *ReturnService) Update(ctx context.Context, id string, in model.ReturnUpdateInput) (*model.Return, error) {
	return s.ret(ctx, transport.Request{Method: http.MethodPatch, Path: path("returns", id), Body: in}, "Failed to update return")
}

// Cancel отзывает заявку.
func (s *ReturnService) Cancel(ctx context.Context, id string) (*model.Return, error) {
	status := model.ReturnStatusCancelled
	return s.Update(ctx, id, model.ReturnUpdateInput{Status: &status})
}

// UploadImages прикладывает изображения к существующей заявке.
func (s *ReturnService) UploadImages(ctx context.Context, id string, images []model.Attachment) (*model.Return, error) {
	if len(images) == 0 {
		return nil, &validation.Error{Fields: []string{"images: must contain at least 1 item(s)"}}
	}
	form := transport.NewForm()
	attach(form, "images", images)
	return s.ret(ctx, transport.Request{Method: http.MethodPost, Path: path("returns", id, "images"), Form: form}, "Failed to upload return images")
}

func attach(form *transport.Form, field string, files []model.Attachment) {
	for _, f := range files {
		form.File(field, f.Filename, f.Content)
	}
}

func (s *ReturnService) ret(ctx context.Context, r transport.Request, fallback string) (*model.Return, error) {
	rt, err := call[model.Return](ctx, s.api, r, fallback)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}
