package usecase

import (
	"context"

	"github.com/cianorte/storefront/internal/domain/model"
	"github.com/cianorte/storefront/internal/domain/repository"
	"github.com/cianorte/storefront/internal/storage/productcache"
)

// ProductUseCase serves catalog reads and administrative writes.
type ProductUseCase struct {
	products repository.ProductRepository
	cache    productcache.Cache
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository, cache productcache.Cache) *ProductUseCase {
	return &ProductUseCase{products: products, cache: cache}
}

// List returns a catalog page matching the filter.
func (u *ProductUseCase) List(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error) {
	return u.products.List(ctx, filter)
}

// Get returns a product by id, read through the cache.
func (u *ProductUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	if product, ok := u.cache.GetProduct(ctx, id); ok {
		return product, nil
	}
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.cache.SetProduct(ctx, product)
	return product, nil
}

// Create persists a new catalog entry.
func (u *ProductUseCase) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	created, err := u.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	u.cache.Invalidate(ctx, created.ID)
	return created, nil
}

// Update overwrites a catalog entry and drops its cache entry.
func (u *ProductUseCase) Update(ctx context.Context, product *model.Product) error {
	if err := u.products.Update(ctx, product); err != nil {
		return err
	}
	u.cache.Invalidate(ctx, product.ID)
	return nil
}

// Delete removes a catalog entry and drops its cache entry.
func (u *ProductUseCase) Delete(ctx context.Context, id int64) error {
	if err := u.products.Delete(ctx, id); err != nil {
		return err
	}
	u.cache.Invalidate(ctx, id)
	return nil
}

// Categories lists distinct non-empty categories, read through the cache.
func (u *ProductUseCase) Categories(ctx context.Context) ([]string, error) {
	if categories, ok := u.cache.GetCategories(ctx); ok {
		return categories, nil
	}
	categories, err := u.products.Categories(ctx)
	if err != nil {
		return nil, err
	}
	u.cache.SetCategories(ctx, categories)
	return categories, nil
}
