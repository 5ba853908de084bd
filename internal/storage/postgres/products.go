package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/cianorte/storefront/internal/domain/errors"
	"github.com/cianorte/storefront/internal/domain/model"
)

type productRepository struct {
	storage *Storage
}

const productColumns = `id, name, description, price, category, image_url, stock_quantity, created_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.ImageURL, &p.StockQuantity, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (name, description, price, category, image_url, stock_quantity)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at`
	created := *product
	err := r.storage.pool.QueryRow(ctx, query,
		product.Name, product.Description, product.Price, product.Category, product.ImageURL, product.StockQuantity,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	return scanProduct(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 10
	}

	where := ` WHERE ($1 = '' OR category = $1) AND ($2 = '' OR name ILIKE '%' || $2 || '%')`

	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, filter.Category, filter.Search).Scan(&total); err != nil {
		return nil, err
	}

	query := `SELECT ` + productColumns + ` FROM products` + where +
		` ORDER BY id LIMIT $3 OFFSET $4`
	rows, err := r.storage.pool.Query(ctx, query, filter.Category, filter.Search, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.ImageURL, &p.StockQuantity, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}

	return &model.ProductPage{
		Products:    products,
		Total:       total,
		Pages:       pages,
		CurrentPage: page,
	}, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	const query = `UPDATE products
                   SET name=$1, description=$2, price=$3, category=$4, image_url=$5, stock_quantity=$6
                   WHERE id=$7`
	tag, err := r.storage.pool.Exec(ctx, query,
		product.Name, product.Description, product.Price, product.Category, product.ImageURL, product.StockQuantity, product.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}
