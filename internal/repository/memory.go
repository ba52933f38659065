// Package repository содержит хранилище эмулятора бэкенда витрины в памяти.
package repository

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/pricing"
)

var (
	// ErrNotFound возвращается, если сущность не найдена.
	ErrNotFound = errors.New("not found")
	// ErrInvalidPromo возвращается для неизвестного промокода.
	ErrInvalidPromo = errors.New("invalid promo code")
	// ErrEmptyCart возвращается при оформлении заказа из пустой корзины.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidQuantity возвращается для количества меньше единицы.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrOutOfStock возвращается, если на складе недостаточно товара.
	ErrOutOfStock = errors.New("insufficient stock")
	// ErrNotCancellable возвращается, если статус не допускает отмену.
	ErrNotCancellable = errors.New("cannot be cancelled in current status")
)

const (
	defaultPageLimit  = 20
	freeShippingFrom  = 100
	flatShippingPrice = 10
)

var taxRate = decimal.NewFromFloat(0.08)

type account struct {
	profile       model.UserProfile
	cart          model.Cart
	addresses     []model.Address
	orders        []model.Order
	returns       []model.Return
	wishlist      []model.WishlistItem
	notifications []model.Notification
}

// Memory хранит каталог и данные пользователей эмулятора.
type Memory struct {
	mu       sync.Mutex
	now      func() time.Time
	products []model.Product
	promos   pricing.Catalog
	accounts map[string]*account
}

// NewMemory создаёт хранилище с каталогом products и промокодами из promos.
// Пустой каталог заменяется демонстрационным.
func NewMemory(products []model.Product, promos pricing.Catalog) *Memory {
	if len(products) == 0 {
		products = SeedProducts()
	}
	if promos == nil {
		promos = pricing.DefaultCatalog()
	}
	return &Memory{
		now:      time.Now,
		products: slices.Clone(products),
		promos:   promos,
		accounts: make(map[string]*account),
	}
}

// SeedProducts возвращает демонстрационный каталог.
func SeedProducts() []model.Product {
	created := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	p := func(id, name, category string, price int64, stock int, featured bool, rating float64) model.Product {
		return model.Product{
			ID:        id,
			Name:      name,
			Category:  category,
			Price:     decimal.NewFromInt(price),
			Sizes:     []string{"S", "M", "L"},
			Colors:    []string{"Black", "Red"},
			Stock:     stock,
			Rating:    rating,
			Featured:  featured,
			CreatedAt: created.AddDate(0, 0, int(price)),
		}
	}
	return []model.Product{
		p("P1", "Classic Tee", "shirts", 25, 100, true, 4.5),
		p("P2", "Oxford Shirt", "shirts", 60, 40, false, 4.2),
		p("P3", "Linen Shirt", "shirts", 75, 15, false, 3.9),
		p("P4", "Denim Jacket", "jackets", 120, 10, true, 4.8),
		p("P5", "Rain Shell", "jackets", 95, 25, false, 4.1),
		p("P6", "Chino Pants", "pants", 55, 60, true, 4.0),
		p("P7", "Running Shorts", "pants", 30, 5, false, 3.7),
	}
}

func (m *Memory) account(userID string) *account {
	a, ok := m.accounts[userID]
	if ok {
		return a
	}
	now := m.now()
	a = &account{
		profile: model.UserProfile{ID: userID, CreatedAt: now},
		cart:    model.Cart{ID: uuid.NewString(), UserID: userID, Items: []model.CartItem{}},
		notifications: []model.Notification{{
			ID:        uuid.NewString(),
			Title:     "Welcome",
			Message:   "Thanks for joining the store",
			Type:      "info",
			CreatedAt: now,
		}},
	}
	m.accounts[userID] = a
	return a
}

func (m *Memory) product(id string) (model.Product, bool) {
	i := slices.IndexFunc(m.products, func(p model.Product) bool { return p.ID == id })
	if i < 0 {
		return model.Product{}, false
	}
	return m.products[i], true
}

// Products возвращает страницу каталога по фильтрам q.
func (m *Memory) Products(ctx context.Context, q model.ProductQuery) model.ProductPage {
	m.mu.Lock()
	defer m.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(q.Search))
	items := make([]model.Product, 0, len(m.products))
	for _, p := range m.products {
		if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
			continue
		}
		if q.Featured && !p.Featured {
			continue
		}
		if q.MinPrice != nil && p.Price.LessThan(*q.MinPrice) {
			continue
		}
		if q.MaxPrice != nil && p.Price.GreaterThan(*q.MaxPrice) {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Description+" "+p.Category), term) {
			continue
		}
		items = append(items, p)
	}

	switch q.Sort {
	case "price_asc":
		slices.SortStableFunc(items, func(a, b model.Product) int { return a.Price.Cmp(b.Price) })
	case "price_desc":
		slices.SortStableFunc(items, func(a, b model.Product) int { return b.Price.Cmp(a.Price) })
	case "rating":
		slices.SortStableFunc(items, func(a, b model.Product) int { return cmp.Compare(b.Rating, a.Rating) })
	case "newest":
		slices.SortStableFunc(items, func(a, b model.Product) int { return b.CreatedAt.Compare(a.CreatedAt) })
	}

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	from := min((page-1)*limit, len(items))
	to := min(from+limit, len(items))

	return model.ProductPage{
		Items: slices.Clone(items[from:to]),
		Total: len(items),
		Page:  page,
		Limit: limit,
	}
}

// Product возвращает товар по идентификатору.
func (m *Memory) Product(ctx context.Context, id string) (model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.product(id)
	if !ok {
		return model.Product{}, ErrNotFound
	}
	return p, nil
}

// Cart возвращает корзину пользователя.
func (m *Memory) Cart(ctx context.Context, userID string) model.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneCart(m.account(userID).cart)
}

// AddToCart добавляет товар в корзину. Позиции с тем же товаром, размером
// и цветом объединяются.
func (m *Memory) AddToCart(ctx context.Context, userID string, in model.AddToCartInput) (model.Cart, error) {
	if in.Quantity < 1 {
		return model.Cart{}, ErrInvalidQuantity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.product(in.ProductID)
	if !ok {
		return model.Cart{}, ErrNotFound
	}

	cart := &m.account(userID).cart
	i := slices.IndexFunc(cart.Items, func(it model.CartItem) bool {
		return it.ProductID == in.ProductID && it.Size == in.Size && it.Color == in.Color
	})

	qty := in.Quantity
	if i >= 0 {
		qty += cart.Items[i].Quantity
	}
	if qty > p.Stock {
		return model.Cart{}, ErrOutOfStock
	}

	if i >= 0 {
		cart.Items[i].Quantity = qty
	} else {
		cart.Items = append(cart.Items, model.CartItem{
			ID:        uuid.NewString(),
			ProductID: p.ID,
			Product:   &p,
			Quantity:  qty,
			Size:      in.Size,
			Color:     in.Color,
			Price:     p.Price,
		})
	}
	recalculate(cart)
	return cloneCart(*cart), nil
}

// UpdateCartItem меняет количество позиции корзины.
func (m *Memory) UpdateCartItem(ctx context.Context, userID, itemID string, quantity int) (model.Cart, error) {
	if quantity < 1 {
		return model.Cart{}, ErrInvalidQuantity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cart := &m.account(userID).cart
	i := slices.IndexFunc(cart.Items, func(it model.CartItem) bool { return it.ID == itemID })
	if i < 0 {
		return model.Cart{}, ErrNotFound
	}
	if p, ok := m.product(cart.Items[i].ProductID); ok && quantity > p.Stock {
		return model.Cart{}, ErrOutOfStock
	}

	cart.Items[i].Quantity = quantity
	recalculate(cart)
	return cloneCart(*cart), nil
}

// RemoveCartItem удаляет позицию корзины.
func (m *Memory) RemoveCartItem(ctx context.Context, userID, itemID string) (model.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart := &m.account(userID).cart
	i := slices.IndexFunc(cart.Items, func(it model.CartItem) bool { return it.ID == itemID })
	if i < 0 {
		return model.Cart{}, ErrNotFound
	}

	cart.Items = slices.Delete(cart.Items, i, i+1)
	recalculate(cart)
	return cloneCart(*cart), nil
}

// ClearCart удаляет все позиции и промокод.
func (m *Memory) ClearCart(ctx context.Context, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart := &m.account(userID).cart
	cart.Items = []model.CartItem{}
	cart.Promo = nil
	recalculate(cart)
}

// ApplyPromo применяет промокод к корзине.
func (m *Memory) ApplyPromo(ctx context.Context, userID, code string) (model.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	promo, ok := m.promos.Lookup(code)
	if !ok {
		return model.Cart{}, ErrInvalidPromo
	}

	cart := &m.account(userID).cart
	cart.Promo = &promo
	return cloneCart(*cart), nil
}

// RemovePromo снимает промокод с корзины.
func (m *Memory) RemovePromo(ctx context.Context, userID string) model.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart := &m.account(userID).cart
	cart.Promo = nil
	return cloneCart(*cart)
}

// recalculate пересчитывает суммы корзины: доставка бесплатна от 100,
// налог 8% от суммы позиций.
func recalculate(c *model.Cart) {
	subtotal := decimal.Zero
	for _, it := range c.Items {
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	shipping := decimal.Zero
	if len(c.Items) > 0 && subtotal.LessThan(decimal.NewFromInt(freeShippingFrom)) {
		shipping = decimal.NewFromInt(flatShippingPrice)
	}
	tax := subtotal.Mul(taxRate).Round(2)

	c.Subtotal = subtotal
	c.Shipping = shipping
	c.Tax = tax
	c.Total = subtotal.Add(shipping).Add(tax)
}

func cloneCart(c model.Cart) model.Cart {
	c.Items = slices.Clone(c.Items)
	if c.Items == nil {
		c.Items = []model.CartItem{}
	}
	if c.Promo != nil {
		p := *c.Promo
		c.Promo = &p
	}
	return c
}
