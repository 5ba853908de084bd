package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cianorte/storefront/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required
// by the reconciler.
type PaymentFacade interface {
	StalePendingPayments(ctx context.Context, minAge time.Duration, limit int) ([]model.Payment, error)
	ReconcilePayment(ctx context.Context, transactionID string) error
}

// Reconciler sweeps payments stuck in Pending and re-queries the
// gateway for them. The webhook is the primary reconciliation path;
// this pool only covers notifications the gateway never delivered.
// Status application is idempotent, so sweeping a payment that a
// webhook settles concurrently is harmless.
type Reconciler struct {
	facade       PaymentFacade
	pollInterval time.Duration
	minAge       time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Payment
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconciliation worker pool. A
// non-positive poll interval disables the sweep entirely.
func NewReconciler(facade PaymentFacade, pollInterval, minAge time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		minAge:       minAge,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Payment, batchSize*workers),
	}
}

// Start launches background processing.
func (r *Reconciler) Start(ctx context.Context) {
	if r.pollInterval <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	payments, err := r.facade.StalePendingPayments(ctx, r.minAge, r.batchSize)
	if err != nil {
		r.logger.Error("fetch stale pending payments failed", slog.String("error", err.Error()))
		return
	}
	for _, payment := range payments {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- payment:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case payment, ok := <-r.jobs:
			if !ok {
				return
			}
			if err := r.facade.ReconcilePayment(ctx, payment.TransactionID); err != nil {
				r.logger.Error("reconcile payment failed",
					slog.String("transaction_id", payment.TransactionID),
					slog.String("error", err.Error()))
			}
		}
	}
}
