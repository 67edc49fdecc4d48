package worker

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"namc-portal/internal/domain"
)

type orderRepo interface {
	ListStuck(ctx context.Context, olderThanSeconds int, limit int) ([]domain.Order, error)
}

type fulfillmentService interface {
	ProcessOrder(ctx context.Context, orderID string) (*domain.FulfillmentResult, error)
}

// RetryWorker sweeps paid orders stuck in PROCESSING and re-runs fulfillment
// for them. Fulfillment skips work that already completed, so re-running a
// partially fulfilled order only retries the failed steps.
type RetryWorker struct {
	orders      orderRepo
	fulfillment fulfillmentService
	interval    time.Duration
	gracePeriod time.Duration
	batchSize   int
	logger      *log.Logger
}

func NewRetryWorker(orders orderRepo, fulfillment fulfillmentService,
	interval, gracePeriod time.Duration, batchSize int, logger *log.Logger) *RetryWorker {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &RetryWorker{
		orders:      orders,
		fulfillment: fulfillment,
		interval:    interval,
		gracePeriod: gracePeriod,
		batchSize:   batchSize,
		logger:      logger,
	}
}

// Start blocks until ctx is cancelled, sweeping on every tick.
func (w *RetryWorker) Start(ctx context.Context) {
	w.logger.Printf("retry worker: starting interval=%s grace=%s batch=%d", w.interval, w.gracePeriod, w.batchSize)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Printf("retry worker: stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *RetryWorker) sweep(ctx context.Context) {
	orders, err := w.orders.ListStuck(ctx, int(w.gracePeriod.Seconds()), w.batchSize)
	if err != nil {
		w.logger.Printf("retry worker: list stuck orders error=%v", err)
		return
	}

	for _, order := range orders {
		result, err := w.fulfillment.ProcessOrder(ctx, order.ID)
		if err != nil {
			if errors.Is(err, domain.ErrFulfillmentInProgress) {
				continue
			}
			w.logger.Printf("retry worker: order_id=%s error=%v", order.ID, err)
			continue
		}
		w.logger.Printf("retry worker: order_id=%s success=%v status=%s errors=%d",
			order.ID, result.Success, result.Status, len(result.Errors))
	}
}
