// Package pricing рассчитывает отображаемую стоимость корзины с учётом промокода.
//
// Расчёт носит справочный характер: итоговую сумму списания определяет заказ,
// созданный на сервере.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/storefront-client/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Apply применяет промокод к сумме total. Процентная скидка ограничена
// диапазоном [0, 100], фиксированная не опускает сумму ниже нуля.
// Результат не округляется; округление выполняется при выводе.
func Apply(total decimal.Decimal, promo *model.AppliedPromo) decimal.Decimal {
	if promo == nil || total.IsNegative() {
		return total
	}

	switch promo.Type {
	case model.DiscountPercentage:
		pct := clamp(promo.Value, decimal.Zero, hundred)
		return total.Mul(decimal.NewFromInt(1).Sub(pct.Div(hundred)))
	case model.DiscountFixed:
		amount := promo.Value
		if amount.IsNegative() {
			amount = decimal.Zero
		}
		return decimal.Max(decimal.Zero, total.Sub(amount))
	default:
		return total
	}
}

// Discount возвращает размер скидки, которую даёт promo для суммы total.
func Discount(total decimal.Decimal, promo *model.AppliedPromo) decimal.Decimal {
	return total.Sub(Apply(total, promo))
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	return decimal.Min(hi, decimal.Max(lo, v))
}

// Catalog содержит известные клиенту промокоды по коду в верхнем регистре.
type Catalog map[string]model.AppliedPromo

// DefaultCatalog возвращает встроенный список промокодов.
func DefaultCatalog() Catalog {
	return NewCatalog(
		model.AppliedPromo{Code: "SAVE10", Type: model.DiscountPercentage, Value: decimal.NewFromInt(10)},
		model.AppliedPromo{Code: "SAVE20", Type: model.DiscountPercentage, Value: decimal.NewFromInt(20)},
		model.AppliedPromo{Code: "WELCOME15", Type: model.DiscountPercentage, Value: decimal.NewFromInt(15)},
		model.AppliedPromo{Code: "FLAT50", Type: model.DiscountFixed, Value: decimal.NewFromInt(50)},
	)
}

// NewCatalog строит каталог из списка промокодов.
func NewCatalog(promos ...model.AppliedPromo) Catalog {
	c := make(Catalog, len(promos))
	for _, p := range promos {
		p.Code = normalize(p.Code)
		c[p.Code] = p
	}
	return c
}

// Lookup ищет промокод без учёта регистра.
func (c Catalog) Lookup(code string) (model.AppliedPromo, bool) {
	p, ok := c[normalize(code)]
	return p, ok
}

// Resolve определяет применённый промокод после успешного вызова сервера.
// Промокод, вернувшийся с сервером, имеет приоритет над локальным каталогом.
// Неизвестный код сохраняется без скидки.
func (c Catalog) Resolve(code string, server *model.AppliedPromo) *model.AppliedPromo {
	if server != nil && server.Code != "" {
		p := *server
		return &p
	}
	if p, ok := c.Lookup(code); ok {
		return &p
	}
	return &model.AppliedPromo{Code: normalize(code), Type: model.DiscountFixed, Value: decimal.Zero}
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
