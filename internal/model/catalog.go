// Package model содержит сущности витрины и входные данные запросов к бэкенду.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product описывает товар каталога.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images,omitempty"`
	Sizes       []string        `json:"sizes,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
	Stock       int             `json:"stock"`
	Rating      float64         `json:"rating,omitempty"`
	Featured    bool            `json:"featured,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ProductPage содержит одну страницу выдачи каталога.
type ProductPage struct {
	Items []Product `json:"items"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

// ProductQuery задаёт фильтры и пагинацию выдачи каталога.
type ProductQuery struct {
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     string
	Featured bool
	Page     int
	Limit    int
}
