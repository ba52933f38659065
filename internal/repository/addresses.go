package repository

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/mmeshcher/storefront-client/internal/model"
)

// Addresses возвращает адреса пользователя.
func (m *Memory) Addresses(ctx context.Context, userID string) []model.Address {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Address{}, m.account(userID).addresses...)
}

// Address возвращает адрес пользователя.
func (m *Memory) Address(ctx context.Context, userID, id string) (model.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.account(userID)
	i := addressIndex(acc, id)
	if i < 0 {
		return model.Address{}, ErrNotFound
	}
	return acc.addresses[i], nil
}

func addressIndex(acc *account, id string) int {
	return slices.IndexFunc(acc.addresses, func(a model.Address) bool { return a.ID == id })
}

// CreateAddress добавляет адрес. Первый адрес пользователя становится
// адресом по умолчанию.
func (m *Memory) CreateAddress(ctx context.Context, userID string, in model.AddressInput) model.Address {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.account(userID)
	a := addressFromInput(uuid.NewString(), userID, in)
	acc.addresses = append(acc.addresses, a)
	if a.IsDefault || len(acc.addresses) == 1 {
		setDefault(acc, a.ID)
	}
	return acc.addresses[len(acc.addresses)-1]
}

// UpdateAddress заменяет поля адреса. Снять признак по умолчанию этим вызовом
// нельзя: для этого другой адрес назначается адресом по умолчанию.
func (m *Memory) UpdateAddress(ctx context.Context, userID, id string, in model.AddressInput) (model.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.account(userID)
	i := addressIndex(acc, id)
	if i < 0 {
		return model.Address{}, ErrNotFound
	}

	wasDefault := acc.addresses[i].IsDefault
	acc.addresses[i] = addressFromInput(id, userID, in)
	acc.addresses[i].IsDefault = wasDefault
	if in.IsDefault {
		setDefault(acc, id)
	}
	return acc.addresses[i], nil
}

// DeleteAddress удаляет адрес. Если удалён адрес по умолчанию, им становится
// первый из оставшихся.
func (m *Memory) DeleteAddress(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.account(userID)
	i := addressIndex(acc, id)
	if i < 0 {
		return ErrNotFound
	}

	wasDefault := acc.addresses[i].IsDefault
	acc.addresses = slices.Delete(acc.addresses, i, i+1)
	if wasDefault && len(acc.addresses) > 0 {
		setDefault(acc, acc.addresses[0].ID)
	}
	return nil
}

// SetDefaultAddress делает адрес адресом по умолчанию и снимает признак
// с остальных.
func (m *Memory) SetDefaultAddress(ctx context.Context, userID, id string) (model.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.account(userID)
	i := addressIndex(acc, id)
	if i < 0 {
		return model.Address{}, ErrNotFound
	}
	setDefault(acc, id)
	return acc.addresses[i], nil
}

func setDefault(acc *account, id string) {
	for i := range acc.addresses {
		acc.addresses[i].IsDefault = acc.addresses[i].ID == id
	}
}

func addressFromInput(id, userID string, in model.AddressInput) model.Address {
	return model.Address{
		ID:         id,
		UserID:     userID,
		Label:      in.Label,
		FullName:   in.FullName,
		Phone:      in.Phone,
		Line1:      in.Line1,
		Line2:      in.Line2,
		City:       in.City,
		State:      in.State,
		PostalCode: in.PostalCode,
		Country:    in.Country,
		IsDefault:  in.IsDefault,
	}
}
