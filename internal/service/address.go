package service

import (
	"context"
	"net/http"

	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/transport"
	"github.com/mmeshcher/storefront-client/internal/validation"
)

// AddressService предоставляет доступ к адресам доставки.
type AddressService struct {
	api Doer
}

// NewAddressService создаёт сервис адресов.
func NewAddressService(api Doer) *AddressService {
	return &AddressService{api: api}
}

// List возвращает все адреса пользователя.
func (s *AddressService) List(ctx context.Context) ([]model.Address, error) {
	return call[[]model.Address](ctx, s.api, transport.Request{Method: http.MethodGet, Path: "/addresses"}, "Failed to fetch addresses")
}

// Get возвращает адрес по идентификатору.
func (s *AddressService) Get(ctx context.Context, id string) (*model.Address, error) {
	return s.address(ctx, transport.Request{Method: http.MethodGet, Path: path("addresses", id)}, "Failed to fetch address")
}

// Create добавляет адрес.
func (s *AddressService) Create(ctx context.Context, in model.AddressInput) (*model.Address, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.address(ctx, transport.Request{Method: http.MethodPost, Path: "/addresses", Body: in}, "Failed to create address")
}

// Update изменяет адрес.
func (s *AddressService) Update(ctx context.Context, id string, in model.AddressInput) (*model.Address, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.address(ctx, transport.Request{Method: http.MethodPatch, Path: path("addresses", id), Body: in}, "Failed to update address")
}

// Delete удаляет адрес.
func (s *AddressService) Delete(ctx context.Context, id string) error {
	return exec(ctx, s.api, transport.Request{Method: http.MethodDelete, Path: path("addresses", id)}, "Failed to delete address")
}

// SetDefault делает адрес адресом по умолчанию. Сервер снимает признак с
// остальных адресов, поэтому после вызова список нужно перечитать.
func (s *AddressService) SetDefault(ctx context.Context, id string) error {
	return exec(ctx, s.api, transport.Request{Method: http.MethodPost, Path: path("addresses", id, "default")}, "Failed to set default address")
}

// Default возвращает адрес по умолчанию или nil, если он не задан.
func (s *AddressService) Default(ctx context.Context) (*model.Address, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].IsDefault {
			return &list[i], nil
		}
	}
	return nil, nil
}

// Duplicate создаёт копию адреса. Копия никогда не становится адресом по умолчанию.
// Если создание копии не удалось, на сервере ничего не меняется.
func (s *AddressService) Duplicate(ctx context.Context, id string) (*model.Address, error) {
	src, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, AddressInputFrom(*src))
}

// AddressInputFrom копирует поля адреса во входные данные без признака по умолчанию.
func AddressInputFrom(a model.Address) model.AddressInput {
	return model.AddressInput{
		Label:      a.Label,
		FullName:   a.FullName,
		Phone:      a.Phone,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsDefault:  false,
	}
}

func (s *AddressService) address(ctx context.Context, r transport.Request, fallback string) (*model.Address, error) {
	a, err := call[model.Address](ctx, s.api, r, fallback)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
