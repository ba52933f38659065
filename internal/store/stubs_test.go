package store

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/service"
)

var errBoom = errors.New("boom")

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) count(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type stubCart struct {
	log *callLog

	mu       sync.Mutex
	cart     *model.Cart
	getErr   error
	getGate  chan struct{}
	entered  chan struct{}
	addErr   error
	addGate  chan struct{}
	promo    *model.AppliedPromo
	promoErr error
}

func (s *stubCart) Get(ctx context.Context) (*model.Cart, error) {
	s.log.add("cart.get")
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.getGate != nil {
		<-s.getGate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.cart == nil {
		return &model.Cart{}, nil
	}
	c := *s.cart
	c.Items = append([]model.CartItem(nil), s.cart.Items...)
	return &c, nil
}

func (s *stubCart) AddItem(ctx context.Context, in model.AddToCartInput) (*model.Cart, error) {
	s.log.add("cart.add")
	if s.addGate != nil {
		<-s.addGate
	}
	if s.addErr != nil {
		return nil, s.addErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		s.cart = &model.Cart{ID: "c1"}
	}
	s.cart.Items = append(s.cart.Items, model.CartItem{
		ID: "i" + in.ProductID, ProductID: in.ProductID, Quantity: in.Quantity, Size: in.Size, Color: in.Color,
		Price: decimal.NewFromInt(10),
	})
	s.cart.Total = s.cart.Total.Add(decimal.NewFromInt(int64(10 * in.Quantity)))
	return s.cart, nil
}

func (s *stubCart) UpdateItem(ctx context.Context, itemID string, quantity int) (*model.Cart, error) {
	s.log.add("cart.update")
	return &model.Cart{}, nil
}

func (s *stubCart) RemoveItem(ctx context.Context, itemID string) (*model.Cart, error) {
	s.log.add("cart.remove")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart != nil {
		items := s.cart.Items[:0]
		for _, it := range s.cart.Items {
			if it.ID != itemID {
				items = append(items, it)
			}
		}
		s.cart.Items = items
	}
	return &model.Cart{}, nil
}

func (s *stubCart) Clear(ctx context.Context) error {
	s.log.add("cart.clear")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	return nil
}

func (s *stubCart) ApplyPromo(ctx context.Context, code string) (*model.Cart, error) {
	s.log.add("cart.promo")
	if s.promoErr != nil {
		return nil, s.promoErr
	}
	return &model.Cart{Promo: s.promo}, nil
}

func (s *stubCart) RemovePromo(ctx context.Context) (*model.Cart, error) {
	s.log.add("cart.unpromo")
	return &model.Cart{}, nil
}

type stubUser struct {
	log *callLog

	mu            sync.Mutex
	profile       *model.UserProfile
	profileErr    error
	notifications []model.Notification
	notifyErr     error
	wishlist      []model.WishlistItem
	wishlistErr   error
	inWishlistErr error
}

func (s *stubUser) Profile(ctx context.Context) (*model.UserProfile, error) {
	s.log.add("profile")
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	p := *s.profile
	return &p, nil
}

func (s *stubUser) UpdateProfile(ctx context.Context, in model.ProfileInput) (*model.UserProfile, error) {
	s.log.add("profile.update")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.FirstName = in.FirstName
	return s.profile, nil
}

func (s *stubUser) UploadAvatar(ctx context.Context, file model.Attachment) (*model.UserProfile, error) {
	s.log.add("profile.avatar")
	return s.profile, nil
}

func (s *stubUser) Notifications(ctx context.Context) ([]model.Notification, error) {
	s.log.add("notifications")
	if s.notifyErr != nil {
		return nil, s.notifyErr
	}
	return append([]model.Notification(nil), s.notifications...), nil
}

func (s *stubUser) MarkNotificationRead(ctx context.Context, id string) error {
	s.log.add("notifications.read")
	return nil
}

func (s *stubUser) Wishlist(ctx context.Context) ([]model.WishlistItem, error) {
	s.log.add("wishlist")
	if s.wishlistErr != nil {
		return nil, s.wishlistErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.WishlistItem(nil), s.wishlist...), nil
}

func (s *stubUser) AddToWishlist(ctx context.Context, productID string) error {
	s.log.add("wishlist.add")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlist = append(s.wishlist, model.WishlistItem{ID: "w-" + productID, ProductID: productID})
	return nil
}

func (s *stubUser) RemoveFromWishlist(ctx context.Context, productID string) error {
	s.log.add("wishlist.remove")
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.wishlist[:0]
	for _, w := range s.wishlist {
		if w.ProductID != productID {
			out = append(out, w)
		}
	}
	s.wishlist = out
	return nil
}

func (s *stubUser) InWishlist(ctx context.Context, productID string) (bool, error) {
	s.log.add("wishlist.check")
	if s.inWishlistErr != nil {
		return false, s.inWishlistErr
	}
	return true, nil
}

type stubAddresses struct {
	log *callLog

	mu        sync.Mutex
	addresses []model.Address
}

func (s *stubAddresses) List(ctx context.Context) ([]model.Address, error) {
	s.log.add("addresses")
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Address(nil), s.addresses...), nil
}

func (s *stubAddresses) Create(ctx context.Context, in model.AddressInput) (*model.Address, error) {
	s.log.add("addresses.create")
	s.mu.Lock()
	defer s.mu.Unlock()
	a := model.Address{ID: "new", FullName: in.FullName}
	s.addresses = append(s.addresses, a)
	return &a, nil
}

func (s *stubAddresses) Update(ctx context.Context, id string, in model.AddressInput) (*model.Address, error) {
	s.log.add("addresses.update")
	return &model.Address{ID: id}, nil
}

func (s *stubAddresses) Delete(ctx context.Context, id string) error {
	s.log.add("addresses.delete")
	return nil
}

func (s *stubAddresses) SetDefault(ctx context.Context, id string) error {
	s.log.add("addresses.default")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.addresses {
		s.addresses[i].IsDefault = s.addresses[i].ID == id
	}
	return nil
}

type stubOrders struct {
	log *callLog

	orders    []model.Order
	createErr error
	lastInput model.CreateOrderInput
}

func (s *stubOrders) List(ctx context.Context, f service.OrderFilter) ([]model.Order, error) {
	s.log.add("orders")
	return append([]model.Order(nil), s.orders...), nil
}

func (s *stubOrders) Create(ctx context.Context, in model.CreateOrderInput) (*model.Order, error) {
	s.log.add("orders.create")
	s.lastInput = in
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &model.Order{ID: "o-new", Status: model.OrderStatusPending, PromoCode: in.PromoCode}, nil
}

func (s *stubOrders) Cancel(ctx context.Context, id, reason string) (*model.Order, error) {
	s.log.add("orders.cancel")
	return &model.Order{ID: id, Status: model.OrderStatusCancelled}, nil
}

type stubReturns struct {
	log *callLog

	returns []model.Return
}

func (s *stubReturns) List(ctx context.Context) ([]model.Return, error) {
	s.log.add("returns")
	return append([]model.Return(nil), s.returns...), nil
}

func (s *stubReturns) Create(ctx context.Context, in model.ReturnInput, images []model.Attachment) (*model.Return, error) {
	s.log.add("returns.create")
	r := model.Return{ID: "r-new", OrderID: in.OrderID, Status: model.ReturnStatusRequested}
	s.returns = append(s.returns, r)
	return &r, nil
}

func (s *stubReturns) Cancel(ctx context.Context, id string) (*model.Return, error) {
	s.log.add("returns.cancel")
	return &model.Return{ID: id, Status: model.ReturnStatusCancelled}, nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *recordingNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

func (n *recordingNotifier) counts() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.successes), len(n.errors)
}

type fixture struct {
	log       *callLog
	cart      *stubCart
	user      *stubUser
	addresses *stubAddresses
	orders    *stubOrders
	returns   *stubReturns
	notices   *recordingNotifier
}

func newFixture() *fixture {
	log := &callLog{}
	return &fixture{
		log:  log,
		cart: &stubCart{log: log},
		user: &stubUser{
			log:     log,
			profile: &model.UserProfile{ID: "u1", Email: "ann@example.com", FirstName: "Ann"},
			notifications: []model.Notification{
				{ID: "N1", Title: "Shipped"},
				{ID: "N2", Title: "Sale", Read: true},
			},
			wishlist: []model.WishlistItem{{ID: "w1", ProductID: "p9"}},
		},
		addresses: &stubAddresses{log: log, addresses: []model.Address{
			{ID: "a1", IsDefault: true},
			{ID: "a2"},
		}},
		orders:  &stubOrders{log: log, orders: []model.Order{{ID: "o1"}}},
		returns: &stubReturns{log: log, returns: []model.Return{{ID: "r1"}}},
		notices: &recordingNotifier{},
	}
}

func (f *fixture) services() Services {
	return Services{
		Cart:      f.cart,
		User:      f.user,
		Addresses: f.addresses,
		Orders:    f.orders,
		Returns:   f.returns,
	}
}

func jitter() {
	time.Sleep(time.Duration(rand.IntN(200)) * time.Microsecond)
}

type jitterCart struct{ CartService }

func (j jitterCart) Get(ctx context.Context) (*model.Cart, error) {
	jitter()
	return j.CartService.Get(ctx)
}

type jitterUser struct{ UserService }

func (j jitterUser) Wishlist(ctx context.Context) ([]model.WishlistItem, error) {
	jitter()
	return j.UserService.Wishlist(ctx)
}

func (j jitterUser) Notifications(ctx context.Context) ([]model.Notification, error) {
	jitter()
	return j.UserService.Notifications(ctx)
}

type jitterAddresses struct{ AddressService }

func (j jitterAddresses) List(ctx context.Context) ([]model.Address, error) {
	jitter()
	return j.AddressService.List(ctx)
}

type jitterOrders struct{ OrderService }

func (j jitterOrders) List(ctx context.Context, f service.OrderFilter) ([]model.Order, error) {
	jitter()
	return j.OrderService.List(ctx, f)
}

type jitterReturns struct{ ReturnService }

func (j jitterReturns) List(ctx context.Context) ([]model.Return, error) {
	jitter()
	return j.ReturnService.List(ctx)
}

// jitteredServices оборачивает загрузки случайной задержкой.
func (f *fixture) jitteredServices() Services {
	return Services{
		Cart:      jitterCart{f.cart},
		User:      jitterUser{f.user},
		Addresses: jitterAddresses{f.addresses},
		Orders:    jitterOrders{f.orders},
		Returns:   jitterReturns{f.returns},
	}
}
