package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/cianorte/storefront/internal/domain/model"
)

type stubPaymentFacade struct {
	mu           sync.Mutex
	staleFn      func(context.Context, time.Duration, int) ([]model.Payment, error)
	reconciled   []string
	reconcileErr error
	notify       chan string
}

func (s *stubPaymentFacade) StalePendingPayments(ctx context.Context, minAge time.Duration, limit int) ([]model.Payment, error) {
	return s.staleFn(ctx, minAge, limit)
}

func (s *stubPaymentFacade) ReconcilePayment(_ context.Context, transactionID string) error {
	s.mu.Lock()
	s.reconciled = append(s.reconciled, transactionID)
	s.mu.Unlock()
	if s.notify != nil {
		s.notify <- transactionID
	}
	return s.reconcileErr
}

func (s *stubPaymentFacade) reconciledIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.reconciled...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestReconcilerSweepsStalePayments(t *testing.T) {
	var sweeps int
	facade := &stubPaymentFacade{notify: make(chan string, 8)}
	facade.staleFn = func(_ context.Context, minAge time.Duration, limit int) ([]model.Payment, error) {
		if minAge != time.Minute {
			t.Errorf("unexpected min age %v", minAge)
		}
		if limit != 8 {
			t.Errorf("unexpected batch size %d", limit)
		}
		sweeps++
		if sweeps > 1 {
			return nil, nil
		}
		return []model.Payment{
			{ID: 1, TransactionID: "tx-1"},
			{ID: 2, TransactionID: "tx-2"},
		}, nil
	}

	reconciler := NewReconciler(facade, 5*time.Millisecond, time.Minute, 8, 2, discardLogger())
	reconciler.Start(context.Background())

	seen := make(map[string]bool)
	timeout := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case id := <-facade.notify:
			seen[id] = true
		case <-timeout:
			t.Fatalf("timed out waiting for reconciliation, saw %v", seen)
		}
	}
	reconciler.Stop()

	if !seen["tx-1"] || !seen["tx-2"] {
		t.Fatalf("expected both payments reconciled, saw %v", seen)
	}
}

func TestReconcilerDisabledWithoutInterval(t *testing.T) {
	facade := &stubPaymentFacade{
		staleFn: func(context.Context, time.Duration, int) ([]model.Payment, error) {
			t.Fatal("sweep should not run when disabled")
			return nil, nil
		},
	}

	reconciler := NewReconciler(facade, 0, time.Minute, 8, 2, discardLogger())
	reconciler.Start(context.Background())
	reconciler.Stop()

	if len(facade.reconciledIDs()) != 0 {
		t.Fatal("expected no reconciliation attempts")
	}
}

func TestReconcilerSurvivesSweepErrors(t *testing.T) {
	var sweeps int
	var mu sync.Mutex
	recovered := make(chan string, 1)

	facade := &stubPaymentFacade{notify: recovered}
	facade.staleFn = func(context.Context, time.Duration, int) ([]model.Payment, error) {
		mu.Lock()
		defer mu.Unlock()
		sweeps++
		if sweeps == 1 {
			return nil, errors.New("database unavailable")
		}
		if sweeps == 2 {
			return []model.Payment{{ID: 3, TransactionID: "tx-3"}}, nil
		}
		return nil, nil
	}

	reconciler := NewReconciler(facade, 5*time.Millisecond, time.Minute, 4, 1, discardLogger())
	reconciler.Start(context.Background())

	select {
	case id := <-recovered:
		if id != "tx-3" {
			t.Fatalf("unexpected transaction %q", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reconciler did not recover after a failed sweep")
	}
	reconciler.Stop()
}

func TestReconcilerStopIsIdempotent(t *testing.T) {
	facade := &stubPaymentFacade{
		staleFn: func(context.Context, time.Duration, int) ([]model.Payment, error) {
			return nil, nil
		},
	}

	reconciler := NewReconciler(facade, 10*time.Millisecond, time.Minute, 4, 2, discardLogger())
	reconciler.Start(context.Background())
	reconciler.Stop()
	reconciler.Stop()
}

func TestReconcilerDefaultsPoolSizes(t *testing.T) {
	facade := &stubPaymentFacade{
		staleFn: func(_ context.Context, _ time.Duration, limit int) ([]model.Payment, error) {
			if limit != 1 {
				t.Errorf("expected batch size clamped to 1, got %d", limit)
			}
			return nil, nil
		},
	}

	reconciler := NewReconciler(facade, 5*time.Millisecond, time.Minute, 0, 0, discardLogger())
	reconciler.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	reconciler.Stop()
}
