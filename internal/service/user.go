package service

import (
	"context"
	"net/http"

	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/transport"
	"github.com/mmeshcher/storefront-client/internal/validation"
)

// UserService предоставляет доступ к профилю, уведомлениям и списку желаний.
type UserService struct {
	api Doer
}

// NewUserService создаёт сервис пользователя.
func NewUserService(api Doer) *UserService {
	return &UserService{api: api}
}

// Profile возвращает профиль текущего пользователя.
func (s *UserService) Profile(ctx context.Context) (*model.UserProfile, error) {
	return s.profile(ctx, transport.Request{Method: http.MethodGet, Path: "/user/profile"}, "Failed to fetch profile")
}

// CreateProfile создаёт профиль после первой регистрации у провайдера.
func (s *UserService) CreateProfile(ctx context.Context, in model.ProfileInput) (*model.UserProfile, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.profile(ctx, transport.Request{Method: http.MethodPost, Path: "/user/profile", Body: in}, "Failed to create profile")
}

// UpdateProfile изменяет профиль.
func (s *UserService) UpdateProfile(ctx context.Context, in model.ProfileInput) (*model.UserProfile, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.profile(ctx, transport.Request{Method: http.MethodPatch, Path: "/user/profile", Body: in}, "Failed to update profile")
}

// UploadAvatar загружает аватар multipart-формой.
func (s *UserService) UploadAvatar(ctx context.Context, file model.Attachment) (*model.UserProfile, error) {
	if len(file.Content) == 0 {
		return nil, &validation.Error{Fields: []string{"avatar: is required"}}
	}
	form := transport.NewForm().File("avatar", file.Filename, file.Content)
	return s.profile(ctx, transport.Request{Method: http.MethodPost, Path: "/user/avatar", Form: form}, "Failed to upload avatar")
}

// Notifications возвращает уведомления пользователя.
func (s *UserService) Notifications(ctx context.Context) ([]model.Notification, error) {
	return call[[]model.Notification](ctx, s.api, transport.Request{Method: http.MethodGet, Path: "/user/notifications"}, "Failed to fetch notifications")
}

// MarkNotificationRead отмечает уведомление прочитанным.
func (s *UserService) MarkNotificationRead(ctx context.Context, id string) error {
	return exec(ctx, s.api, transport.Request{Method: http.MethodPost, Path: path("user/notifications", id, "read")}, "Failed to mark notification as read")
}

func (s *UserService) profile(ctx context.Context, r transport.Request, fallback string) (*model.UserProfile, error) {
	p, err := call[model.UserProfile](ctx, s.api, r, fallback)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
