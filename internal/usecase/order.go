package usecase

import (
	"context"
	"log/slog"

	domainErrors "github.com/cianorte/storefront/internal/domain/errors"
	"github.com/cianorte/storefront/internal/domain/model"
	"github.com/cianorte/storefront/internal/domain/repository"
	"github.com/cianorte/storefront/internal/events"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders    repository.OrderRepository
	publisher events.Publisher
	logger    *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, publisher events.Publisher, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, publisher: publisher, logger: logger}
}

// Create places an order for the requested lines. Stock validation,
// price snapshots and decrements happen atomically in the repository;
// any failing line leaves no partial state behind.
func (u *OrderUseCase) Create(ctx context.Context, userID int64, lines []model.OrderLine) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, domainErrors.ErrInvalidOrderLine
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, domainErrors.ErrInvalidOrderLine
		}
	}

	order, err := u.orders.Create(ctx, userID, lines)
	if err != nil {
		return nil, err
	}

	u.publishCreated(order)
	return order, nil
}

// ListByUser returns the user's orders, newest first, with items.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// GetForUser returns the order only when it belongs to the user.
func (u *OrderUseCase) GetForUser(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return u.orders.GetForUser(ctx, userID, orderID)
}

// SetStatus applies a direct status transition. Trusted callers only;
// transition legality is their responsibility.
func (u *OrderUseCase) SetStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if !status.Valid() {
		return domainErrors.ErrInvalidOrderStatus
	}
	return u.orders.UpdateStatus(ctx, orderID, status)
}

func (u *OrderUseCase) publishCreated(order *model.Order) {
	env, err := events.NewEnvelope(events.TypeOrderCreated, events.OrderCreatedPayload{
		OrderID: order.ID,
		UserID:  order.UserID,
		Total:   order.Total,
		Items:   len(order.Items),
	})
	if err != nil {
		u.logger.Error("build order event failed", slog.String("error", err.Error()))
		return
	}
	u.publisher.Publish(events.TopicOrders, order.ID, env)
}
