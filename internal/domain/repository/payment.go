package repository

import (
	"context"
	"time"

	"github.com/cianorte/storefront/internal/domain/model"
)

// PaymentRepository describes persistence operations with payments.
type PaymentRepository interface {
	// CreateWithOrderStatus persists the payment and moves its order to
	// the given status within one transaction.
	CreateWithOrderStatus(ctx context.Context, payment *model.Payment, orderStatus model.OrderStatus) (*model.Payment, error)

	GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error)

	// ApplyStatus sets the payment status and optionally the owning
	// order's status in one transaction, locking the payment row so
	// concurrent poll and webhook deliveries serialize. It returns the
	// updated payment and whether the payment status actually changed.
	// An unknown transaction id yields ErrNotFound.
	ApplyStatus(ctx context.Context, transactionID string, status model.PaymentStatus, orderStatus *model.OrderStatus) (*model.Payment, bool, error)

	// ListStalePending returns payments still Pending that were created
	// more than minAge ago, oldest first.
	ListStalePending(ctx context.Context, minAge time.Duration, limit int) ([]model.Payment, error)
}
