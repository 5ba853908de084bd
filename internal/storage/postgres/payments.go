package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/cianorte/storefront/internal/domain/errors"
	"github.com/cianorte/storefront/internal/domain/model"
)

type paymentRepository struct {
	storage *Storage
}

const paymentColumns = `id, order_id, method, amount, status, transaction_id, created_at`

func scanPayment(row pgx.Row) (*model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.Method, &p.Amount, &p.Status, &p.TransactionID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CreateWithOrderStatus persists the payment and marks the order in the
// same transaction: a payment row never exists without its order having
// moved to the target status.
func (r *paymentRepository) CreateWithOrderStatus(ctx context.Context, payment *model.Payment, orderStatus model.OrderStatus) (*model.Payment, error) {
	created := *payment
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO payments (order_id, method, amount, status, transaction_id)
             VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
			payment.OrderID, payment.Method, payment.Amount, payment.Status, payment.TransactionID,
		).Scan(&created.ID, &created.CreatedAt)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `UPDATE orders SET status=$1 WHERE id=$2`, orderStatus, payment.OrderID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *paymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id=$1`
	return scanPayment(r.storage.pool.QueryRow(ctx, query, transactionID))
}

// ApplyStatus locks the payment row before touching it so concurrent
// poll and webhook deliveries for the same transaction serialize. The
// order side effect honors the status transition table; a terminal
// order is left untouched.
func (r *paymentRepository) ApplyStatus(ctx context.Context, transactionID string, status model.PaymentStatus, orderStatus *model.OrderStatus) (*model.Payment, bool, error) {
	var (
		payment *model.Payment
		changed bool
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectQuery = `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id=$1 FOR UPDATE`
		p, err := scanPayment(tx.QueryRow(ctx, selectQuery, transactionID))
		if err != nil {
			return err
		}

		if p.Status != status {
			if _, err := tx.Exec(ctx, `UPDATE payments SET status=$1 WHERE id=$2`, status, p.ID); err != nil {
				return err
			}
			p.Status = status
			changed = true
		}

		if orderStatus != nil {
			var current model.OrderStatus
			err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, p.OrderID).Scan(&current)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return domainErrors.ErrNotFound
				}
				return err
			}
			if current != *orderStatus && current.CanTransition(*orderStatus) {
				if _, err := tx.Exec(ctx, `UPDATE orders SET status=$1 WHERE id=$2`, *orderStatus, p.OrderID); err != nil {
					return err
				}
			}
		}

		payment = p
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return payment, changed, nil
}

func (r *paymentRepository) ListStalePending(ctx context.Context, minAge time.Duration, limit int) ([]model.Payment, error) {
	cutoff := time.Now().Add(-minAge)
	const query = `SELECT ` + paymentColumns + ` FROM payments
                   WHERE status=$1 AND created_at < $2
                   ORDER BY created_at
                   LIMIT $3`
	rows, err := r.storage.pool.Query(ctx, query, model.PaymentStatusPending, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Method, &p.Amount, &p.Status, &p.TransactionID, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}
