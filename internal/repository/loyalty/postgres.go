package loyalty

import (
	"context"
	"errors"
	"io"
	"log"

	"namc-portal/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

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

func (r *postgresRepo) Insert(ctx context.Context, entry domain.LoyaltyEntry) (*domain.LoyaltyEntry, error) {
	const q = `
INSERT INTO loyalty_ledger (member_id, order_id, points, multiplier)
VALUES ($1, $2, $3, $4)
RETURNING id::text, awarded_at
`
	res := entry
	err := r.pool.QueryRow(ctx, q, entry.MemberID, entry.OrderID, entry.Points, entry.Multiplier).
		Scan(&res.ID, &res.AwardedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Printf("loyalty repo: insert order_id=%s already applied", entry.OrderID)
			return nil, domain.ErrAlreadyApplied
		}
		r.logger.Printf("loyalty repo: insert order_id=%s error=%v", entry.OrderID, err)
		return nil, err
	}
	r.logger.Printf("loyalty repo: awarded order_id=%s member_id=%s points=%d", res.OrderID, res.MemberID, res.Points)
	return &res, nil
}

func (r *postgresRepo) GetByOrder(ctx context.Context, orderID string) (*domain.LoyaltyEntry, error) {
	const q = `
SELECT id::text, member_id::text, order_id::text, points, multiplier, awarded_at
FROM loyalty_ledger
WHERE order_id = $1
`
	var e domain.LoyaltyEntry
	err := r.pool.QueryRow(ctx, q, orderID).Scan(&e.ID, &e.MemberID, &e.OrderID, &e.Points, &e.Multiplier, &e.AwardedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("loyalty repo: get order_id=%s error=%v", orderID, err)
		return nil, err
	}
	return &e, nil
}

func (r *postgresRepo) ListByMember(ctx context.Context, memberID string) ([]domain.LoyaltyEntry, error) {
	const q = `
SELECT id::text, member_id::text, order_id::text, points, multiplier, awarded_at
FROM loyalty_ledger
WHERE member_id = $1
ORDER BY awarded_at DESC
`
	rows, err := r.pool.Query(ctx, q, memberID)
	if err != nil {
		r.logger.Printf("loyalty repo: list member_id=%s error=%v", memberID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.LoyaltyEntry
	for rows.Next() {
		var e domain.LoyaltyEntry
		if err := rows.Scan(&e.ID, &e.MemberID, &e.OrderID, &e.Points, &e.Multiplier, &e.AwardedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
