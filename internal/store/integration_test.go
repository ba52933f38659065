package store_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mmeshcher/storefront-client/internal/auth"
	"github.com/mmeshcher/storefront-client/internal/handler"
	"github.com/mmeshcher/storefront-client/internal/middleware"
	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/repository"
	"github.com/mmeshcher/storefront-client/internal/service"
	"github.com/mmeshcher/storefront-client/internal/store"
	"github.com/mmeshcher/storefront-client/internal/transport"
	"github.com/mmeshcher/storefront-client/internal/validation"
)

type backend struct {
	repo  *repository.Memory
	auth  *middleware.AuthMiddleware
	url   string
	addr  model.Address
	creds *auth.Credentials
	store *store.Store
	logs  *observer.ObservedLogs
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	ctx := context.Background()

	repo := repository.NewMemory(nil, nil)
	repo.SaveProfile(ctx, "u1", model.ProfileInput{Email: "ann@example.com", FirstName: "Ann", LastName: "Lee"})
	addr := repo.CreateAddress(ctx, "u1", model.AddressInput{
		FullName: "Ann Lee", Phone: "555", Line1: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US",
	})

	authMW := middleware.NewAuthMiddleware("integration-secret")
	srv := httptest.NewServer(handler.NewHandler(repo, zap.NewNop(), authMW).SetupRouter())
	t.Cleanup(srv.Close)

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	creds := auth.NewCredentials()
	client := transport.NewClient(srv.URL+"/api",
		transport.WithTimeout(5*time.Second),
		transport.WithTokenSource(creds),
		transport.WithLogger(logger),
	)
	s := store.New(store.NewServices(client), creds, store.WithLogger(logger))

	return &backend{repo: repo, auth: authMW, url: srv.URL, addr: addr, creds: creds, store: s, logs: logs}
}

func (b *backend) signIn(t *testing.T) {
	t.Helper()
	ev := auth.SignedIn("u1", auth.StaticToken(b.auth.IssueToken("u1")))
	require.NoError(t, b.store.HandleAuthEvent(context.Background(), ev))
}

func (b *backend) notices(kind string) []string {
	var out []string
	for _, e := range b.logs.FilterMessage("notice").All() {
		fields := e.ContextMap()
		if fields["kind"] == kind {
			out = append(out, fields["message"].(string))
		}
	}
	return out
}

func TestStorefront_CheckoutFlow(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	s := b.store

	b.signIn(t)

	snap := s.Snapshot()
	require.NotNil(t, snap.User)
	assert.Equal(t, "ann@example.com", snap.User.Email)
	require.Len(t, snap.User.Addresses, 1)
	assert.True(t, snap.User.Addresses[0].IsDefault)
	assert.Len(t, snap.Notifications, 1)
	assert.Equal(t, 1, s.UnreadCount())
	require.NotNil(t, snap.Cart)
	assert.True(t, snap.Cart.IsEmpty())

	require.NoError(t, s.AddToCart(ctx, model.AddToCartInput{ProductID: "P1", Size: "M", Color: "Red", Quantity: 2}))
	assert.Equal(t, 2, s.TotalItems())
	assert.True(t, s.IsInCart("P1"))
	assert.True(t, decimal.NewFromInt(50).Equal(s.Subtotal()))
	assert.True(t, decimal.NewFromInt(64).Equal(s.TotalPrice()), "total = %s", s.TotalPrice())

	require.NoError(t, s.ApplyPromo(ctx, "flat50"))
	require.NotNil(t, s.Snapshot().Promo)
	assert.Equal(t, model.DiscountFixed, s.Snapshot().Promo.Type)
	assert.True(t, decimal.NewFromInt(14).Equal(s.TotalPrice()), "total = %s", s.TotalPrice())

	err := s.ApplyPromo(ctx, "BOGUS")
	require.Error(t, err)
	assert.Equal(t, "Invalid promo code", err.Error())
	assert.Equal(t, "FLAT50", s.Snapshot().Promo.Code)

	order, err := s.CreateOrder(ctx, model.CreateOrderInput{AddressID: b.addr.ID, PaymentMethod: "card"})
	require.NoError(t, err)
	assert.Equal(t, "FLAT50", order.PromoCode)
	assert.True(t, decimal.NewFromInt(50).Equal(order.Discount))
	assert.True(t, decimal.NewFromInt(14).Equal(order.Total))

	snap = s.Snapshot()
	require.Len(t, snap.Orders, 1)
	assert.Equal(t, order.ID, snap.Orders[0].ID)
	assert.Nil(t, snap.Promo)
	assert.Zero(t, s.TotalItems())

	_, err = s.CreateOrder(ctx, model.CreateOrderInput{AddressID: b.addr.ID, PaymentMethod: "card"})
	require.ErrorIs(t, err, store.ErrEmptyCart)

	assert.Equal(t, []string{"Added to cart", "Promo code applied", "Order placed successfully"}, b.notices("success"))
	assert.Equal(t, []string{"Invalid promo code", "cart is empty"}, b.notices("error"))
}

func TestStorefront_AccountFlow(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	s := b.store

	b.signIn(t)

	require.NoError(t, s.ToggleWishlist(ctx, "P3"))
	assert.True(t, s.IsInWishlist(ctx, "P3"))
	require.NoError(t, s.ToggleWishlist(ctx, "P3"))
	assert.False(t, s.IsInWishlist(ctx, "P3"))

	second, err := s.AddAddress(ctx, model.AddressInput{
		FullName: "Bob", Phone: "1", Line1: "2 Side St", City: "Shelbyville", PostalCode: "54321", Country: "US",
	})
	require.NoError(t, err)
	require.NoError(t, s.SetDefaultAddress(ctx, second.ID))
	require.NotNil(t, s.DefaultAddress())
	assert.Equal(t, second.ID, s.DefaultAddress().ID)

	_, err = s.AddAddress(ctx, model.AddressInput{FullName: "Incomplete"})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Fields)
	assert.Len(t, s.Snapshot().User.Addresses, 2)

	note := s.Snapshot().Notifications[0]
	require.NoError(t, s.MarkNotificationRead(ctx, note.ID))
	require.NoError(t, s.MarkNotificationRead(ctx, note.ID))
	assert.Zero(t, s.UnreadCount())

	require.NoError(t, s.UpdateProfile(ctx, model.ProfileInput{FirstName: "Anna"}))
	assert.Equal(t, "Anna", s.Snapshot().User.FirstName)
	assert.Equal(t, "Lee", s.Snapshot().User.LastName)
}

func TestStorefront_ReturnFlow(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	s := b.store

	b.signIn(t)
	require.NoError(t, s.AddToCart(ctx, model.AddToCartInput{ProductID: "P2", Quantity: 1}))
	order, err := s.CreateOrder(ctx, model.CreateOrderInput{AddressID: b.addr.ID, PaymentMethod: "paypal"})
	require.NoError(t, err)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	ret, err := s.CreateReturn(ctx, model.ReturnInput{
		OrderID: order.ID,
		Reason:  "wrong size",
		Items:   []model.ReturnItemInput{{ProductID: "P2", Quantity: 1}},
	}, []model.Attachment{{Filename: "tag.png", Content: png}})
	require.NoError(t, err)
	assert.Len(t, ret.Images, 1)
	require.Len(t, s.Snapshot().Returns, 1)

	require.NoError(t, s.CancelReturn(ctx, ret.ID))
	assert.Equal(t, model.ReturnStatusCancelled, s.Snapshot().Returns[0].Status)

	err = s.CancelReturn(ctx, ret.ID)
	require.Error(t, err)

	require.NoError(t, s.CancelOrder(ctx, order.ID, "changed my mind"))
	assert.Equal(t, model.OrderStatusCancelled, s.Snapshot().Orders[0].Status)
}

func TestStorefront_SignOut(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	s := b.store

	b.signIn(t)
	require.NoError(t, s.AddToCart(ctx, model.AddToCartInput{ProductID: "P1", Quantity: 1}))

	require.NoError(t, s.HandleAuthEvent(ctx, auth.SignedOut()))

	snap := s.Snapshot()
	assert.False(t, snap.SignedIn)
	assert.Nil(t, snap.User)
	assert.Nil(t, snap.Cart)
	assert.Zero(t, s.TotalItems())

	_, err := b.creds.Token()
	assert.ErrorIs(t, err, auth.ErrNoToken)

	err = s.AddToCart(ctx, model.AddToCartInput{ProductID: "P1", Quantity: 1})
	assert.ErrorIs(t, err, store.ErrSignedOut)

	cart := service.NewCartService(transport.NewClient(b.url + "/api"))
	_, err = cart.Get(ctx)
	var terr *transport.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 401, terr.Status)
	assert.Equal(t, "Unauthorized", terr.Message)
}

func TestStorefront_RejectedTokenLeavesStateEmpty(t *testing.T) {
	b := newBackend(t)

	ev := auth.SignedIn("u1", auth.StaticToken("forged.token"))
	require.NoError(t, b.store.HandleAuthEvent(context.Background(), ev))

	snap := b.store.Snapshot()
	assert.True(t, snap.SignedIn)
	assert.Nil(t, snap.User)
	assert.Nil(t, snap.Cart)
	assert.Empty(t, b.notices("error"), "load failures are logged, not shown")
	assert.NotEmpty(t, b.logs.FilterMessage("load failed").All())
}
