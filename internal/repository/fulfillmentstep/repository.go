package fulfillmentstep

import "context"

// Repository persists per-order step-completion markers. The orchestrator
// consults them before applying a side effect so a re-run skips work that
// already completed.
type Repository interface {
	MarkDone(ctx context.Context, orderID, step string) error
	IsDone(ctx context.Context, orderID, step string) (bool, error)
	ListDone(ctx context.Context, orderID string) ([]string, error)
}
