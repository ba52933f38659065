package model

import "time"

// Address описывает адрес доставки пользователя.
// Среди адресов одного пользователя не больше одного с IsDefault.
type Address struct {
	ID         string `json:"id"`
	UserID     string `json:"userId,omitempty"`
	Label      string `json:"label,omitempty"`
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"isDefault"`
}

// UserProfile содержит поля профиля пользователя.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// User объединяет профиль и адреса, полученные разными запросами.
type User struct {
	UserProfile
	Addresses []Address `json:"addresses"`
}

// WishlistItem описывает товар из списка желаний.
type WishlistItem struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Product   *Product  `json:"product,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}

// Notification описывает уведомление пользователя.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
