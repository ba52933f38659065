package model

// AddToCartInput содержит параметры добавления товара в корзину.
type AddToCartInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

// AddressInput содержит поля создания и изменения адреса.
type AddressInput struct {
	Label      string `json:"label,omitempty"`
	FullName   string `json:"fullName" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
	IsDefault  bool   `json:"isDefault"`
}

// CreateOrderInput содержит параметры оформления заказа из текущей корзины.
type CreateOrderInput struct {
	AddressID     string `json:"addressId" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=card cash paypal"`
	PromoCode     string `json:"promoCode,omitempty"`
	Notes         string `json:"notes,omitempty" validate:"max=500"`
}

// ReturnItemInput описывает возвращаемую позицию.
type ReturnItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
	Reason    string `json:"reason,omitempty"`
}

// ReturnInput содержит параметры заявки на возврат.
type ReturnInput struct {
	OrderID     string            `json:"orderId" validate:"required"`
	Items       []ReturnItemInput `json:"items" validate:"required,min=1,dive"`
	Reason      string            `json:"reason" validate:"required"`
	Description string            `json:"description,omitempty" validate:"max=1000"`
}

// ReturnUpdateInput содержит изменяемые поля заявки на возврат.
type ReturnUpdateInput struct {
	Description *string       `json:"description,omitempty"`
	Status      *ReturnStatus `json:"status,omitempty"`
}

// ProfileInput содержит изменяемые поля профиля. Пустые поля не отправляются.
type ProfileInput struct {
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Attachment описывает файл, отправляемый multipart-запросом.
type Attachment struct {
	Filename string
	Content  []byte
}
