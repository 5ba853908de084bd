package postgres

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/cianorte/storefront/internal/domain/errors"
	"github.com/cianorte/storefront/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

// Create validates stock, snapshots prices, inserts the order with its
// items and decrements stock inside a single transaction. Product rows
// are locked FOR UPDATE in ascending id order so concurrent orders for
// overlapping products serialize without deadlocking, and the sum of
// reserved quantities can never exceed the available stock.
func (r *orderRepository) Create(ctx context.Context, userID int64, lines []model.OrderLine) (*model.Order, error) {
	merged := mergeLines(lines)

	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		total := decimal.Zero
		prices := make(map[int64]decimal.Decimal, len(merged))

		for _, line := range merged {
			var (
				price decimal.Decimal
				stock int
			)
			err := tx.QueryRow(ctx,
				`SELECT price, stock_quantity FROM products WHERE id=$1 FOR UPDATE`,
				line.ProductID,
			).Scan(&price, &stock)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return domainErrors.ErrProductNotFound
				}
				return err
			}
			if stock < line.Quantity {
				return domainErrors.ErrInsufficientStock
			}
			prices[line.ProductID] = price
			total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		created := model.Order{
			UserID: userID,
			Status: model.OrderStatusCreated,
			Total:  total,
		}
		err := tx.QueryRow(ctx,
			`INSERT INTO orders (user_id, status, total) VALUES ($1, $2, $3) RETURNING id, created_at`,
			userID, model.OrderStatusCreated, total,
		).Scan(&created.ID, &created.CreatedAt)
		if err != nil {
			return err
		}

		for _, line := range merged {
			item := model.OrderItem{
				OrderID:   created.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: prices[line.ProductID],
			}
			err := tx.QueryRow(ctx,
				`INSERT INTO order_items (order_id, product_id, quantity, unit_price)
                 VALUES ($1, $2, $3, $4) RETURNING id`,
				item.OrderID, item.ProductID, item.Quantity, item.UnitPrice,
			).Scan(&item.ID)
			if err != nil {
				return err
			}

			if _, err := tx.Exec(ctx,
				`UPDATE products SET stock_quantity = stock_quantity - $1 WHERE id=$2`,
				line.Quantity, line.ProductID,
			); err != nil {
				return err
			}

			created.Items = append(created.Items, item)
		}

		order = &created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// mergeLines collapses duplicate product references so each row is
// locked and checked once.
func mergeLines(lines []model.OrderLine) []model.OrderLine {
	byProduct := make(map[int64]int, len(lines))
	for _, line := range lines {
		byProduct[line.ProductID] += line.Quantity
	}
	merged := make([]model.OrderLine, 0, len(byProduct))
	for id, qty := range byProduct {
		merged = append(merged, model.OrderLine{ProductID: id, Quantity: qty})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ProductID < merged[j].ProductID })
	return merged
}

func (r *orderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	const query = `SELECT id, user_id, status, total, created_at FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetForUser enforces ownership: an order belonging to another user is
// indistinguishable from a missing one.
func (r *orderRepository) GetForUser(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	const query = `SELECT id, user_id, status, total, created_at FROM orders WHERE id=$1 AND user_id=$2`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, orderID, userID))
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT id, user_id, status, total, created_at
                   FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := r.attachItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE orders SET status=$1 WHERE id=$2`, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) attachItems(ctx context.Context, order *model.Order) error {
	const query = `SELECT id, order_id, product_id, quantity, unit_price
                   FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}
