// Package store содержит агрегированное состояние витрины для слоя представления.
//
// Store хранит снимок данных текущего пользователя, загружает его при входе,
// очищает при выходе и предоставляет операции изменения, каждая из которых
// вызывает сервис, перечитывает затронутую коллекцию и показывает уведомление.
// Каждый вход и выход увеличивает номер сессии; результаты загрузок, начатых
// в прошлой сессии, отбрасываются.
package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/mmeshcher/storefront-client/internal/auth"
	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/pricing"
)

// Op обозначает вид операции изменения для отслеживания занятости.
type Op string

const (
	OpCart         Op = "cart"
	OpWishlist     Op = "wishlist"
	OpAddress      Op = "address"
	OpOrder        Op = "order"
	OpReturn       Op = "return"
	OpPromo        Op = "promo"
	OpNotification Op = "notification"
	OpProfile      Op = "profile"
)

var (
	// ErrEmptyCart возвращается при попытке оформить заказ без товаров.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSignedOut возвращается при вызове операции без входа.
	ErrSignedOut = errors.New("sign in required")
)

// Snapshot содержит копию состояния, видимого слою представления.
type Snapshot struct {
	SignedIn      bool
	Identity      string
	Generation    uint64
	User          *model.User
	Cart          *model.Cart
	Wishlist      []model.WishlistItem
	Orders        []model.Order
	Returns       []model.Return
	Notifications []model.Notification
	Promo         *model.AppliedPromo
	Busy          map[Op]bool
}

// Store хранит состояние витрины текущего пользователя.
type Store struct {
	services Services
	creds    *auth.Credentials
	notifier Notifier
	promos   pricing.Catalog
	logger   *zap.Logger

	mu            sync.RWMutex
	generation    uint64
	signedIn      bool
	identity      string
	profile       *model.UserProfile
	addresses     []model.Address
	cart          *model.Cart
	wishlist      []model.WishlistItem
	orders        []model.Order
	returns       []model.Return
	notifications []model.Notification
	promo         *model.AppliedPromo
	busy          map[Op]int

	listenersMu  sync.Mutex
	listeners    map[int]func(Snapshot)
	nextListener int

	// notifyMu упорядочивает доставку снимков подписчикам.
	notifyMu sync.Mutex
}

// Option настраивает Store.
type Option func(*Store)

// WithNotifier задаёт способ показа уведомлений.
func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithPromoCatalog задаёт локальный каталог промокодов.
func WithPromoCatalog(c pricing.Catalog) Option {
	return func(s *Store) {
		if c != nil {
			s.promos = c
		}
	}
}

// WithLogger задаёт логгер.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New создаёт хранилище. creds должен быть тем же контекстом учётных данных,
// который передан транспорту.
func New(services Services, creds *auth.Credentials, opts ...Option) *Store {
	s := &Store{
		services:  services,
		creds:     creds,
		promos:    pricing.DefaultCatalog(),
		logger:    zap.NewNop(),
		busy:      make(map[Op]int),
		listeners: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = NewLogNotifier(s.logger)
	}
	if s.creds == nil {
		s.creds = auth.NewCredentials()
	}
	return s
}

// HandleAuthEvent переводит хранилище в состояние, соответствующее событию
// провайдера аутентификации. При входе сначала загружается профиль, затем
// параллельно остальные коллекции; сбои отдельных загрузок только логируются.
// Повторное событие входа той же личности лишь обновляет токен.
func (s *Store) HandleAuthEvent(ctx context.Context, ev auth.Event) error {
	if !ev.SignedIn {
		s.signOut()
		return nil
	}

	token := ""
	if ev.Token != nil {
		t, err := ev.Token(ctx)
		if err != nil {
			s.signOut()
			return fmt.Errorf("get auth token: %w", err)
		}
		token = t
	}

	s.mu.RLock()
	same := s.signedIn && s.identity == ev.Identity
	s.mu.RUnlock()
	if same {
		s.creds.Set(token)
		return nil
	}

	s.creds.Set(token)
	gen := s.startSession(ev.Identity)
	s.logger.Info("session started", zap.String("identity", ev.Identity), zap.Uint64("generation", gen))

	s.loadAll(ctx, gen)
	return nil
}

func (s *Store) startSession(identity string) uint64 {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.resetLocked()
	s.signedIn = true
	s.identity = identity
	s.mu.Unlock()

	s.notify()
	return gen
}

func (s *Store) signOut() {
	s.creds.Clear()

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.resetLocked()
	s.mu.Unlock()

	s.logger.Info("session ended", zap.Uint64("generation", gen))
	s.notify()
}

func (s *Store) resetLocked() {
	s.signedIn = false
	s.identity = ""
	s.profile = nil
	s.addresses = nil
	s.cart = nil
	s.wishlist = nil
	s.orders = nil
	s.returns = nil
	s.notifications = nil
	s.promo = nil
}

// Generation возвращает номер текущей сессии.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *Store) session() (uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation, s.signedIn
}

// commit применяет изменение, если сессия gen всё ещё текущая.
func (s *Store) commit(gen uint64, what string, apply func()) bool {
	s.mu.Lock()
	if s.generation != gen || !s.signedIn {
		current := s.generation
		s.mu.Unlock()
		s.logger.Debug("stale result discarded",
			zap.String("what", what),
			zap.Uint64("generation", gen),
			zap.Uint64("current", current),
		)
		return false
	}
	apply()
	s.mu.Unlock()

	s.notify()
	return true
}

// Snapshot возвращает копию текущего состояния.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		SignedIn:      s.signedIn,
		Identity:      s.identity,
		Generation:    s.generation,
		Cart:          copyCart(s.cart),
		Wishlist:      slices.Clone(s.wishlist),
		Orders:        slices.Clone(s.orders),
		Returns:       slices.Clone(s.returns),
		Notifications: slices.Clone(s.notifications),
		Busy:          make(map[Op]bool, len(s.busy)),
	}
	if s.profile != nil {
		snap.User = &model.User{UserProfile: *s.profile, Addresses: slices.Clone(s.addresses)}
	}
	if s.promo != nil {
		p := *s.promo
		snap.Promo = &p
	}
	for op, n := range s.busy {
		if n > 0 {
			snap.Busy[op] = true
		}
	}
	return snap
}

func copyCart(c *model.Cart) *model.Cart {
	if c == nil {
		return nil
	}
	out := *c
	out.Items = slices.Clone(c.Items)
	if c.Promo != nil {
		p := *c.Promo
		out.Promo = &p
	}
	return &out
}

// Subscribe регистрирует fn, вызываемую после каждого изменения состояния.
// Возвращает функцию отписки.
//
// fn вызывается в горутине, выполнившей изменение, в том числе в горутинах
// параллельной загрузки при входе. Вызовы никогда не перекрываются, снимки
// приходят в порядке их создания, и последний полученный снимок совпадает с
// текущим состоянием. Чтение Snapshot из fn допустимо; операции изменения и
// HandleAuthEvent из fn вызывать нельзя, их следует запускать в другой горутине.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.listenersMu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *Store) notify() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.listenersMu.Lock()
	fns := slices.Collect(maps.Values(s.listeners))
	s.listenersMu.Unlock()
	if len(fns) == 0 {
		return
	}

	snap := s.Snapshot()
	for _, fn := range fns {
		fn(snap)
	}
}

// Busy сообщает, выполняется ли сейчас операция вида op.
func (s *Store) Busy(op Op) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy[op] > 0
}

// AnyBusy сообщает, выполняется ли хотя бы одна операция.
func (s *Store) AnyBusy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.busy {
		if n > 0 {
			return true
		}
	}
	return false
}

func (s *Store) begin(op Op) func() {
	s.mu.Lock()
	s.busy[op]++
	s.mu.Unlock()
	s.notify()

	return func() {
		s.mu.Lock()
		s.busy[op]--
		if s.busy[op] <= 0 {
			delete(s.busy, op)
		}
		s.mu.Unlock()
		s.notify()
	}
}

// mutate выполняет операцию изменения: отмечает занятость, вызывает fn и
// показывает ровно одно уведомление. fn возвращает текст уведомления об успехе.
func (s *Store) mutate(op Op, fn func(gen uint64) (string, error)) error {
	gen, signedIn := s.session()
	if !signedIn {
		s.notifier.Error("Please sign in to continue")
		return ErrSignedOut
	}

	done := s.begin(op)
	defer done()

	msg, err := fn(gen)
	if err != nil {
		s.logger.Debug("mutation failed", zap.String("op", string(op)), zap.Error(err))
		s.notifier.Error(err.Error())
		return err
	}
	s.notifier.Success(msg)
	return nil
}
