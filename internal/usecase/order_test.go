package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/cianorte/storefront/internal/domain/errors"
	"github.com/cianorte/storefront/internal/domain/model"
	"github.com/cianorte/storefront/internal/events"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// capturePublisher records published envelopes for assertions.
type capturePublisher struct {
	topics    []string
	keys      []int64
	envelopes []*events.Envelope
}

func (p *capturePublisher) Publish(topic string, key int64, env *events.Envelope) {
	p.topics = append(p.topics, topic)
	p.keys = append(p.keys, key)
	p.envelopes = append(p.envelopes, env)
}

func (p *capturePublisher) Close() error { return nil }

type stubOrderRepository struct {
	createFn       func(context.Context, int64, []model.OrderLine) (*model.Order, error)
	getByIDFn      func(context.Context, int64) (*model.Order, error)
	getForUserFn   func(context.Context, int64, int64) (*model.Order, error)
	listByUserFn   func(context.Context, int64) ([]model.Order, error)
	updateStatusFn func(context.Context, int64, model.OrderStatus) error
}

func (s stubOrderRepository) Create(ctx context.Context, userID int64, lines []model.OrderLine) (*model.Order, error) {
	return s.createFn(ctx, userID, lines)
}

func (s stubOrderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	return s.getByIDFn(ctx, orderID)
}

func (s stubOrderRepository) GetForUser(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return s.getForUserFn(ctx, userID, orderID)
}

func (s stubOrderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.listByUserFn(ctx, userID)
}

func (s stubOrderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return s.updateStatusFn(ctx, orderID, status)
}

func TestOrderUseCaseCreateRejectsEmptyOrder(t *testing.T) {
	uc := NewOrderUseCase(stubOrderRepository{createFn: func(context.Context, int64, []model.OrderLine) (*model.Order, error) {
		t.Fatal("create should not be called for an empty order")
		return nil, nil
	}}, events.NopPublisher{}, discardLogger())

	if _, err := uc.Create(context.Background(), 1, nil); err != domainErrors.ErrInvalidOrderLine {
		t.Fatalf("expected invalid order line error, got %v", err)
	}
}

func TestOrderUseCaseCreateRejectsNonPositiveQuantity(t *testing.T) {
	uc := NewOrderUseCase(stubOrderRepository{createFn: func(context.Context, int64, []model.OrderLine) (*model.Order, error) {
		t.Fatal("create should not be called for invalid quantities")
		return nil, nil
	}}, events.NopPublisher{}, discardLogger())

	lines := []model.OrderLine{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 0}}
	if _, err := uc.Create(context.Background(), 1, lines); err != domainErrors.ErrInvalidOrderLine {
		t.Fatalf("expected invalid order line error, got %v", err)
	}

	lines = []model.OrderLine{{ProductID: 1, Quantity: -3}}
	if _, err := uc.Create(context.Background(), 1, lines); err != domainErrors.ErrInvalidOrderLine {
		t.Fatalf("expected invalid order line error, got %v", err)
	}
}

func TestOrderUseCaseCreateSuccessPublishesEvent(t *testing.T) {
	publisher := &capturePublisher{}
	uc := NewOrderUseCase(stubOrderRepository{createFn: func(_ context.Context, userID int64, lines []model.OrderLine) (*model.Order, error) {
		if userID != 7 || len(lines) != 1 {
			t.Fatalf("unexpected arguments: %d %v", userID, lines)
		}
		return &model.Order{
			ID:     42,
			UserID: userID,
			Status: model.OrderStatusCreated,
			Total:  decimal.NewFromFloat(59.90),
			Items:  []model.OrderItem{{ID: 1, OrderID: 42, ProductID: 3, Quantity: 2}},
		}, nil
	}}, publisher, discardLogger())

	order, err := uc.Create(context.Background(), 7, []model.OrderLine{{ProductID: 3, Quantity: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != 42 || order.Status != model.OrderStatusCreated {
		t.Fatalf("unexpected order %+v", order)
	}

	if len(publisher.envelopes) != 1 {
		t.Fatalf("expected one event, got %d", len(publisher.envelopes))
	}
	if publisher.topics[0] != events.TopicOrders || publisher.keys[0] != 42 {
		t.Fatalf("unexpected event routing: %s %d", publisher.topics[0], publisher.keys[0])
	}
	if publisher.envelopes[0].EventType != events.TypeOrderCreated {
		t.Fatalf("unexpected event type %q", publisher.envelopes[0].EventType)
	}
}

func TestOrderUseCaseCreatePropagatesStockErrors(t *testing.T) {
	publisher := &capturePublisher{}
	uc := NewOrderUseCase(stubOrderRepository{createFn: func(context.Context, int64, []model.OrderLine) (*model.Order, error) {
		return nil, domainErrors.ErrInsufficientStock
	}}, publisher, discardLogger())

	if _, err := uc.Create(context.Background(), 1, []model.OrderLine{{ProductID: 1, Quantity: 1}}); err != domainErrors.ErrInsufficientStock {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
	if len(publisher.envelopes) != 0 {
		t.Fatal("no event should be published for a failed order")
	}
}

func TestOrderUseCaseSetStatus(t *testing.T) {
	var gotOrderID int64
	var gotStatus model.OrderStatus
	uc := NewOrderUseCase(stubOrderRepository{updateStatusFn: func(_ context.Context, orderID int64, status model.OrderStatus) error {
		gotOrderID, gotStatus = orderID, status
		return nil
	}}, events.NopPublisher{}, discardLogger())

	if err := uc.SetStatus(context.Background(), 5, model.OrderStatusCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotOrderID != 5 || gotStatus != model.OrderStatusCompleted {
		t.Fatalf("unexpected update: %d %s", gotOrderID, gotStatus)
	}

	if err := uc.SetStatus(context.Background(), 5, model.OrderStatus("SHIPPED")); err != domainErrors.ErrInvalidOrderStatus {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestOrderUseCaseGetForUser(t *testing.T) {
	uc := NewOrderUseCase(stubOrderRepository{getForUserFn: func(_ context.Context, userID, orderID int64) (*model.Order, error) {
		if userID != 2 {
			return nil, domainErrors.ErrNotFound
		}
		return &model.Order{ID: orderID, UserID: userID}, nil
	}}, events.NopPublisher{}, discardLogger())

	if _, err := uc.GetForUser(context.Background(), 99, 1); err != domainErrors.ErrNotFound {
		t.Fatalf("expected foreign order to look missing, got %v", err)
	}

	order, err := uc.GetForUser(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.UserID != 2 {
		t.Fatalf("unexpected owner %d", order.UserID)
	}
}
