package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/transport"
)

const defaultRelatedLimit = 4

// ProductService предоставляет доступ к каталогу.
type ProductService struct {
	api Doer
}

// NewProductService создаёт сервис каталога.
func NewProductService(api Doer) *ProductService {
	return &ProductService{api: api}
}

// List возвращает страницу каталога по фильтрам.
func (s *ProductService) List(ctx context.Context, q model.ProductQuery) (*model.ProductPage, error) {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.MinPrice != nil {
		v.Set("minPrice", q.MinPrice.String())
	}
	if q.MaxPrice != nil {
		v.Set("maxPrice", q.MaxPrice.String())
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Featured {
		v.Set("featured", "true")
	}
	v = pageQuery(v, q.Page, q.Limit)

	page, err := call[model.ProductPage](ctx, s.api, transport.Request{
		Method: http.MethodGet,
		Path:   "/products",
		Query:  v,
	}, "Failed to fetch products")
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Get возвращает товар по идентификатору.
func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	p, err := call[model.Product](ctx, s.api, transport.Request{
		Method: http.MethodGet,
		Path:   path("products", id),
	}, "Failed to fetch product")
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Search выполняет полнотекстовый поиск. Пустой запрос равносилен List.
func (s *ProductService) Search(ctx context.Context, term string, page, limit int) (*model.ProductPage, error) {
	if term == "" {
		return s.List(ctx, model.ProductQuery{Page: page, Limit: limit})
	}

	res, err := call[model.ProductPage](ctx, s.api, transport.Request{
		Method: http.MethodGet,
		Path:   "/products/search",
		Query:  pageQuery(url.Values{"q": {term}}, page, limit),
	}, "Failed to search products")
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ByCategory возвращает страницу товаров категории.
func (s *ProductService) ByCategory(ctx context.Context, category string, page, limit int) (*model.ProductPage, error) {
	return s.List(ctx, model.ProductQuery{Category: category, Page: page, Limit: limit})
}

// Featured возвращает рекомендуемые товары.
func (s *ProductService) Featured(ctx context.Context, limit int) ([]model.Product, error) {
	page, err := s.List(ctx, model.ProductQuery{Featured: true, Limit: limit})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// Related возвращает до limit товаров той же категории, исключая сам товар.
// Выполняет два запроса: товар и страницу его категории.
func (s *ProductService) Related(ctx context.Context, id string, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = defaultRelatedLimit
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	page, err := s.List(ctx, model.ProductQuery{Category: p.Category, Limit: limit + 1})
	if err != nil {
		return nil, err
	}

	related := make([]model.Product, 0, limit)
	for _, item := range page.Items {
		if item.ID == id {
			continue
		}
		related = append(related, item)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}
