package repository

import (
	"context"

	"github.com/cianorte/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. Create
// must validate and decrement stock for every line atomically: either
// the order, its items and the stock decrements all commit, or nothing
// does.
type OrderRepository interface {
	Create(ctx context.Context, userID int64, lines []model.OrderLine) (*model.Order, error)
	GetByID(ctx context.Context, orderID int64) (*model.Order, error)
	GetForUser(ctx context.Context, userID, orderID int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
