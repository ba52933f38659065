package store

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/service"
)

// loadAll загружает профиль, затем параллельно остальные коллекции.
// Ошибки загрузок не прерывают соседние загрузки.
func (s *Store) loadAll(ctx context.Context, gen uint64) {
	s.loadProfile(ctx, gen)

	var g errgroup.Group
	for _, load := range []func(context.Context, uint64){
		s.loadCart,
		s.loadWishlist,
		s.loadOrders,
		s.loadReturns,
		s.loadNotifications,
		s.loadAddresses,
	} {
		g.Go(func() error {
			load(ctx, gen)
			return nil
		})
	}
	_ = g.Wait()
}

func load[T any](s *Store, ctx context.Context, gen uint64, name string, fetch func(context.Context) (T, error), apply func(T)) {
	v, err := fetch(ctx)
	if err != nil {
		s.logger.Warn("load failed",
			zap.String("load", name),
			zap.Uint64("generation", gen),
			zap.Error(err),
		)
		return
	}
	s.commit(gen, name, func() { apply(v) })
}

// LoadProfile перечитывает профиль пользователя.
func (s *Store) LoadProfile(ctx context.Context) {
	if gen, ok := s.session(); ok {
		s.loadProfile(ctx, gen)
	}
}

// LoadCart перечитывает корзину.
func (s *Store) LoadCart(ctx context.Context) {
	if gen, ok := s.session(); ok {
		s.loadCart(ctx, gen)
	}
}

// LoadWishlist перечитывает список желаний.
func (s *Store) LoadWishlist(ctx context.Context) {
	if gen, ok := s.session(); ok {
		s.loadWishlist(ctx, gen)
	}
}

// LoadOrders перечитывает историю заказов.
func (s *Store) LoadOrders(ctx context.Context) {
	if gen, ok := s.session(); ok {
		s.loadOrders(ctx, gen)
	}
}

// LoadReturns перечитывает заявки на возврат.
func (s *Store) LoadReturns(ctx context.Context) {
	if gen, ok := s.session(); ok {
		s.loadReturns(ctx, gen)
	}
}

// LoadNotifications перечитывает уведомления.
func (s *Store) LoadNotifications(ctx context.Context) {
	if gen, ok := s.session(); ok {
		s.loadNotifications(ctx, gen)
	}
}

// LoadAddresses перечитывает адреса.
func (s *Store) LoadAddresses(ctx context.Context) {
	if gen, ok := s.session(); ok {
		s.loadAddresses(ctx, gen)
	}
}

func (s *Store) loadProfile(ctx context.Context, gen uint64) {
	load(s, ctx, gen, "profile", s.services.User.Profile, func(p *model.UserProfile) {
		s.profile = p
	})
}

func (s *Store) loadCart(ctx context.Context, gen uint64) {
	load(s, ctx, gen, "cart", s.services.Cart.Get, func(c *model.Cart) {
		s.cart = c
		if c != nil && c.Promo != nil {
			p := *c.Promo
			s.promo = &p
		}
	})
}

func (s *Store) loadWishlist(ctx context.Context, gen uint64) {
	load(s, ctx, gen, "wishlist", s.services.User.Wishlist, func(items []model.WishlistItem) {
		s.wishlist = items
	})
}

func (s *Store) loadOrders(ctx context.Context, gen uint64) {
	fetch := func(ctx context.Context) ([]model.Order, error) {
		return s.services.Orders.List(ctx, service.OrderFilter{})
	}
	load(s, ctx, gen, "orders", fetch, func(orders []model.Order) {
		s.orders = orders
	})
}

func (s *Store) loadReturns(ctx context.Context, gen uint64) {
	load(s, ctx, gen, "returns", s.services.Returns.List, func(returns []model.Return) {
		s.returns = returns
	})
}

func (s *Store) loadNotifications(ctx context.Context, gen uint64) {
	load(s, ctx, gen, "notifications", s.services.User.Notifications, func(items []model.Notification) {
		s.notifications = items
	})
}

func (s *Store) loadAddresses(ctx context.Context, gen uint64) {
	load(s, ctx, gen, "addresses", s.services.Addresses.List, func(list []model.Address) {
		s.addresses = list
	})
}
