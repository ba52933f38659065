package store

import (
	"context"

	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/service"
)

// CartService описывает операции корзины, используемые хранилищем.
type CartService interface {
	Get(ctx context.Context) (*model.Cart, error)
	AddItem(ctx context.Context, in model.AddToCartInput) (*model.Cart, error)
	UpdateItem(ctx context.Context, itemID string, quantity int) (*model.Cart, error)
	RemoveItem(ctx context.Context, itemID string) (*model.Cart, error)
	Clear(ctx context.Context) error
	ApplyPromo(ctx context.Context, code string) (*model.Cart, error)
	RemovePromo(ctx context.Context) (*model.Cart, error)
}

// UserService описывает операции профиля, уведомлений и списка желаний.
type UserService interface {
	Profile(ctx context.Context) (*model.UserProfile, error)
	UpdateProfile(ctx context.Context, in model.ProfileInput) (*model.UserProfile, error)
	UploadAvatar(ctx context.Context, file model.Attachment) (*model.UserProfile, error)
	Notifications(ctx context.Context) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	Wishlist(ctx context.Context) ([]model.WishlistItem, error)
	AddToWishlist(ctx context.Context, productID string) error
	RemoveFromWishlist(ctx context.Context, productID string) error
	InWishlist(ctx context.Context, productID string) (bool, error)
}

// AddressService описывает операции с адресами.
type AddressService interface {
	List(ctx context.Context) ([]model.Address, error)
	Create(ctx context.Context, in model.AddressInput) (*model.Address, error)
	Update(ctx context.Context, id string, in model.AddressInput) (*model.Address, error)
	Delete(ctx context.Context, id string) error
	SetDefault(ctx context.Context, id string) error
}

// OrderService описывает операции с заказами.
type OrderService interface {
	List(ctx context.Context, f service.OrderFilter) ([]model.Order, error)
	Create(ctx context.Context, in model.CreateOrderInput) (*model.Order, error)
	Cancel(ctx context.Context, id, reason string) (*model.Order, error)
}

// ReturnService описывает операции с возвратами.
type ReturnService interface {
	List(ctx context.Context) ([]model.Return, error)
	Create(ctx context.Context, in model.ReturnInput, images []model.Attachment) (*model.Return, error)
	Cancel(ctx context.Context, id string) (*model.Return, error)
}

// Services объединяет сервисы ресурсов, с которыми работает хранилище.
type Services struct {
	Cart      CartService
	User      UserService
	Addresses AddressService
	Orders    OrderService
	Returns   ReturnService
}

// NewServices создаёт сервисы ресурсов поверх общего транспорта.
func NewServices(api service.Doer) Services {
	return Services{
		Cart:      service.NewCartService(api),
		User:      service.NewUserService(api),
		Addresses: service.NewAddressService(api),
		Orders:    service.NewOrderService(api),
		Returns:   service.NewReturnService(api),
	}
}
