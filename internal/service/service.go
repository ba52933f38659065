// Package service содержит типизированные обёртки над ресурсами бэкенда витрины.
//
// Каждый метод строит запрос, передаёт его транспорту и возвращает поле data
// ответа либо ошибку с сообщением сервера. Составные операции выполняют
// несколько запросов без транзакционных гарантий: сбой любого шага прерывает
// операцию, уже выполненные шаги не откатываются.
package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mmeshcher/storefront-client/internal/transport"
)

// Doer описывает транспорт, используемый сервисами.
type Doer interface {
	Do(ctx context.Context, r transport.Request) *transport.Envelope
}

func call[T any](ctx context.Context, api Doer, r transport.Request, fallback string) (T, error) {
	var out T
	env := api.Do(ctx, r)
	if !env.OK() {
		return out, env.Err(fallback)
	}
	if err := env.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

func exec(ctx context.Context, api Doer, r transport.Request, fallback string) error {
	env := api.Do(ctx, r)
	if !env.OK() {
		return env.Err(fallback)
	}
	return nil
}

func path(parts ...string) string {
	out := ""
	for i, p := range parts {
		if i%2 == 1 {
			p = url.PathEscape(p)
		}
		out += "/" + p
	}
	return out
}

func pageQuery(q url.Values, page, limit int) url.Values {
	if q == nil {
		q = url.Values{}
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}
