package fulfillmentstep

import (
	"context"
	"io"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) MarkDone(ctx context.Context, orderID, step string) error {
	const q = `
INSERT INTO fulfillment_steps (order_id, step)
VALUES ($1, $2)
ON CONFLICT (order_id, step) DO NOTHING
`
	if _, err := r.pool.Exec(ctx, q, orderID, step); err != nil {
		r.logger.Printf("step repo: mark order_id=%s step=%s error=%v", orderID, step, err)
		return err
	}
	r.logger.Printf("step repo: done order_id=%s step=%s", orderID, step)
	return nil
}

func (r *postgresRepo) IsDone(ctx context.Context, orderID, step string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM fulfillment_steps WHERE order_id = $1 AND step = $2)`
	var done bool
	if err := r.pool.QueryRow(ctx, q, orderID, step).Scan(&done); err != nil {
		r.logger.Printf("step repo: check order_id=%s step=%s error=%v", orderID, step, err)
		return false, err
	}
	return done, nil
}

func (r *postgresRepo) ListDone(ctx context.Context, orderID string) ([]string, error) {
	const q = `SELECT step FROM fulfillment_steps WHERE order_id = $1 ORDER BY completed_at`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		r.logger.Printf("step repo: list order_id=%s error=%v", orderID, err)
		return nil, err
	}
	defer rows.Close()

	var steps []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}
