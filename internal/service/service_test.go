package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/transport"
	"github.com/mmeshcher/storefront-client/internal/validation"
)

type stubDoer struct {
	responses map[string][]*transport.Envelope
	requests  []transport.Request
}

func newStubDoer() *stubDoer {
	return &stubDoer{responses: map[string][]*transport.Envelope{}}
}

func (s *stubDoer) on(method, path string, envs ...*transport.Envelope) *stubDoer {
	key := method + " " + path
	s.responses[key] = append(s.responses[key], envs...)
	return s
}

func (s *stubDoer) Do(ctx context.Context, r transport.Request) *transport.Envelope {
	s.requests = append(s.requests, r)
	key := r.Method + " " + r.Path
	queue := s.responses[key]
	if len(queue) == 0 {
		return &transport.Envelope{Message: "Request failed", Status: http.StatusNotFound, Errors: []string{}}
	}
	s.responses[key] = queue[1:]
	return queue[0]
}

func ok(t *testing.T, v any) *transport.Envelope {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return &transport.Envelope{Data: b, Message: "Success", Status: http.StatusOK}
}

func fail(status int, message string) *transport.Envelope {
	return &transport.Envelope{Message: message, Status: status, Errors: []string{}}
}

func TestProductService_Related(t *testing.T) {
	api := newStubDoer().
		on(http.MethodGet, "/products/p1", ok(t, model.Product{ID: "p1", Category: "shirts"})).
		on(http.MethodGet, "/products", ok(t, model.ProductPage{Items: []model.Product{
			{ID: "p1", Category: "shirts"},
			{ID: "p2", Category: "shirts"},
			{ID: "p3", Category: "shirts"},
		}}))

	related, err := NewProductService(api).Related(context.Background(), "p1", 2)
	require.NoError(t, err)

	require.Len(t, related, 2)
	assert.Equal(t, "p2", related[0].ID)
	assert.Equal(t, "p3", related[1].ID)

	require.Len(t, api.requests, 2)
	assert.Equal(t, "shirts", api.requests[1].Query.Get("category"))
	assert.Equal(t, "3", api.requests[1].Query.Get("limit"))
}

func TestProductService_RelatedAbortsOnFirstFailure(t *testing.T) {
	api := newStubDoer().on(http.MethodGet, "/products/missing", fail(http.StatusNotFound, "Product not found"))

	_, err := NewProductService(api).Related(context.Background(), "missing", 4)
	require.Error(t, err)
	assert.Equal(t, "Product not found", err.Error())
	assert.Len(t, api.requests, 1)
}

func TestProductService_ListQuery(t *testing.T) {
	api := newStubDoer().on(http.MethodGet, "/products", ok(t, model.ProductPage{}))
	minPrice := decimal.NewFromInt(10)

	_, err := NewProductService(api).List(context.Background(), model.ProductQuery{
		Category: "shoes",
		MinPrice: &minPrice,
		Sort:     "price_asc",
		Page:     2,
		Limit:    20,
	})
	require.NoError(t, err)

	q := api.requests[0].Query
	assert.Equal(t, "shoes", q.Get("category"))
	assert.Equal(t, "10", q.Get("minPrice"))
	assert.Equal(t, "price_asc", q.Get("sort"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "20", q.Get("limit"))
	assert.Empty(t, q.Get("maxPrice"))
}

func TestProductService_Search(t *testing.T) {
	api := newStubDoer().on(http.MethodGet, "/products/search", ok(t, model.ProductPage{Total: 1}))

	page, err := NewProductService(api).Search(context.Background(), "red shirt", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "red shirt", api.requests[0].Query.Get("q"))
}

func TestAddressService_Default(t *testing.T) {
	api := newStubDoer().
		on(http.MethodGet, "/addresses",
			ok(t, []model.Address{{ID: "a1"}, {ID: "a2", IsDefault: true}}),
			ok(t, []model.Address{{ID: "a1"}}),
		)
	svc := NewAddressService(api)

	def, err := svc.Default(context.Background())
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, "a2", def.ID)

	def, err = svc.Default(context.Background())
	require.NoError(t, err)
	assert.Nil(t, def)
}

func TestAddressService_Duplicate(t *testing.T) {
	src := model.Address{
		ID: "a1", FullName: "Ann Lee", Phone: "+100", Line1: "1 Main St",
		City: "Springfield", PostalCode: "12345", Country: "US", IsDefault: true,
	}
	api := newStubDoer().
		on(http.MethodGet, "/addresses/a1", ok(t, src)).
		on(http.MethodPost, "/addresses", ok(t, model.Address{ID: "a9", FullName: "Ann Lee"}))

	copyAddr, err := NewAddressService(api).Duplicate(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "a9", copyAddr.ID)

	require.Len(t, api.requests, 2)
	body, isInput := api.requests[1].Body.(model.AddressInput)
	require.True(t, isInput, "create body must be an AddressInput")
	assert.False(t, body.IsDefault)
	assert.Equal(t, "Ann Lee", body.FullName)
	assert.Equal(t, "1 Main St", body.Line1)
	assert.Equal(t, "12345", body.PostalCode)
}

func TestAddressService_DuplicateCreateFails(t *testing.T) {
	api := newStubDoer().
		on(http.MethodGet, "/addresses/a1", ok(t, model.Address{
			ID: "a1", FullName: "Ann", Phone: "1", Line1: "x", City: "y", PostalCode: "z", Country: "US",
		})).
		on(http.MethodPost, "/addresses", fail(http.StatusInternalServerError, "Request failed"))

	_, err := NewAddressService(api).Duplicate(context.Background(), "a1")
	require.Error(t, err)
	assert.Equal(t, "Failed to create address", err.Error())
	assert.Len(t, api.requests, 2)
}

func TestCartService_AddItemValidatesBeforeCall(t *testing.T) {
	api := newStubDoer()

	_, err := NewCartService(api).AddItem(context.Background(), model.AddToCartInput{ProductID: "p1", Quantity: 0})

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, api.requests)
}

func TestCartService_AddItem(t *testing.T) {
	api := newStubDoer().on(http.MethodPost, "/cart", ok(t, model.Cart{
		Items: []model.CartItem{{ID: "i1", ProductID: "P1", Quantity: 2, Size: "M", Color: "Red"}},
	}))

	cart, err := NewCartService(api).AddItem(context.Background(), model.AddToCartInput{
		ProductID: "P1", Quantity: 2, Size: "M", Color: "Red",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, cart.TotalItems())
}

func TestCartService_UpdateItemPath(t *testing.T) {
	api := newStubDoer().on(http.MethodPatch, "/cart/items/a%2Fb", ok(t, model.Cart{}))

	_, err := NewCartService(api).UpdateItem(context.Background(), "a/b", 3)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"quantity": 3}, api.requests[0].Body)
}

func TestCartService_FallbackMessage(t *testing.T) {
	api := newStubDoer().on(http.MethodGet, "/cart", fail(http.StatusBadGateway, "Request failed"))

	_, err := NewCartService(api).Get(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch cart", err.Error())

	var apiErr *transport.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestReturnService_CreateMultipartOnlyWithImages(t *testing.T) {
	in := model.ReturnInput{
		OrderID: "o1",
		Reason:  "damaged",
		Items:   []model.ReturnItemInput{{ProductID: "p1", Quantity: 1}},
	}
	api := newStubDoer().on(http.MethodPost, "/returns", ok(t, model.Return{ID: "r1"}), ok(t, model.Return{ID: "r2"}))
	svc := NewReturnService(api)

	_, err := svc.Create(context.Background(), in, nil)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), in, []model.Attachment{{Filename: "a.jpg", Content: []byte("x")}})
	require.NoError(t, err)

	require.Len(t, api.requests, 2)
	assert.NotNil(t, api.requests[0].Body)
	assert.Nil(t, api.requests[0].Form)
	assert.Nil(t, api.requests[1].Body)
	assert.NotNil(t, api.requests[1].Form)
}

func TestReturnService_Cancel(t *testing.T) {
	api := newStubDoer().on(http.MethodPatch, "/returns/r1", ok(t, model.Return{ID: "r1", Status: model.ReturnStatusCancelled}))

	r, err := NewReturnService(api).Cancel(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, model.ReturnStatusCancelled, r.Status)

	body := api.requests[0].Body.(model.ReturnUpdateInput)
	require.NotNil(t, body.Status)
	assert.Equal(t, model.ReturnStatusCancelled, *body.Status)
}

func TestUserService_InWishlist(t *testing.T) {
	api := newStubDoer().
		on(http.MethodGet, "/wishlist", ok(t, []model.WishlistItem{{ID: "w1", ProductID: "p1"}})).
		on(http.MethodGet, "/wishlist", ok(t, []model.WishlistItem{{ID: "w1", ProductID: "p1"}}))
	svc := NewUserService(api)

	in, err := svc.InWishlist(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, in)

	in, err = svc.InWishlist(context.Background(), "p2")
	require.NoError(t, err)
	assert.False(t, in)
}

func TestUserService_MarkNotificationReadPath(t *testing.T) {
	api := newStubDoer().on(http.MethodPost, "/user/notifications/n1/read", ok(t, map[string]bool{"read": true}))

	require.NoError(t, NewUserService(api).MarkNotificationRead(context.Background(), "n1"))
}

func TestOrderService_CreateValidates(t *testing.T) {
	api := newStubDoer()

	_, err := NewOrderService(api).Create(context.Background(), model.CreateOrderInput{PaymentMethod: "card"})
	require.Error(t, err)
	assert.Empty(t, api.requests)
}
