package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"namc-portal/internal/domain"
)

type stubOrderRepo struct {
	orders []domain.Order
	err    error
}

func (s *stubOrderRepo) ListStuck(_ context.Context, _ int, _ int) ([]domain.Order, error) {
	return s.orders, s.err
}

type stubFulfillment struct {
	errsByOrder map[string]error
	processed   []string
}

func (s *stubFulfillment) ProcessOrder(_ context.Context, orderID string) (*domain.FulfillmentResult, error) {
	if err, ok := s.errsByOrder[orderID]; ok && err != nil {
		return nil, err
	}
	s.processed = append(s.processed, orderID)
	return &domain.FulfillmentResult{OrderID: orderID, Success: true, Status: domain.OrderStatusConfirmed}, nil
}

func TestSweepRetriesStuckOrders(t *testing.T) {
	orders := &stubOrderRepo{orders: []domain.Order{{ID: "o1"}, {ID: "o2"}}}
	fulfillment := &stubFulfillment{}
	w := NewRetryWorker(orders, fulfillment, time.Minute, 5*time.Minute, 10, nil)

	w.sweep(context.Background())

	if len(fulfillment.processed) != 2 {
		t.Fatalf("expected both orders retried, got %v", fulfillment.processed)
	}
}

func TestSweepSkipsInProgressOrders(t *testing.T) {
	orders := &stubOrderRepo{orders: []domain.Order{{ID: "o1"}, {ID: "o2"}}}
	fulfillment := &stubFulfillment{errsByOrder: map[string]error{"o1": domain.ErrFulfillmentInProgress}}
	w := NewRetryWorker(orders, fulfillment, time.Minute, 5*time.Minute, 10, nil)

	w.sweep(context.Background())

	if len(fulfillment.processed) != 1 || fulfillment.processed[0] != "o2" {
		t.Fatalf("expected only o2 retried, got %v", fulfillment.processed)
	}
}

func TestSweepToleratesListFailure(t *testing.T) {
	orders := &stubOrderRepo{err: errors.New("db down")}
	fulfillment := &stubFulfillment{}
	w := NewRetryWorker(orders, fulfillment, time.Minute, 5*time.Minute, 10, nil)

	w.sweep(context.Background())

	if len(fulfillment.processed) != 0 {
		t.Fatalf("expected no processing on list failure, got %v", fulfillment.processed)
	}
}
