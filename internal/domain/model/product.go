package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product describes a catalog entry. Stock is mutated only through the
// order repository's reserving transaction.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Price         decimal.Decimal
	Category      string
	ImageURL      string
	StockQuantity int
	CreatedAt     time.Time
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category string
	Search   string
	Page     int
	PerPage  int
}

// ProductPage is a single page of catalog results.
type ProductPage struct {
	Products    []Product
	Total       int
	Pages       int
	CurrentPage int
}
