package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cianorte/storefront/internal/domain/model"
)

// ProductRequest describes create/update payloads for catalog entries.
type ProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"image_url"`
	StockQuantity int             `json:"stock_quantity"`
}

// ProductResponse is the public view of a product.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"image_url"`
	StockQuantity int             `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ProductListResponse is a paginated catalog listing.
type ProductListResponse struct {
	Products    []ProductResponse `json:"products"`
	Total       int               `json:"total"`
	Pages       int               `json:"pages"`
	CurrentPage int               `json:"current_page"`
}

// ToProductResponse converts the domain product.
func ToProductResponse(p *model.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Category:      p.Category,
		ImageURL:      p.ImageURL,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
	}
}
