package repository

import (
	"context"

	"github.com/cianorte/storefront/internal/domain/model"
)

// ProductRepository describes catalog persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) error
	Categories(ctx context.Context) ([]string, error)
}
