package access

import (
	"context"
	"errors"
	"io"
	"log"

	"namc-portal/internal/domain"

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

func (r *postgresRepo) Insert(ctx context.Context, grant domain.DigitalAccessGrant) (*domain.DigitalAccessGrant, error) {
	const q = `
INSERT INTO digital_access_grants (member_id, product_id, order_id, access_level)
VALUES ($1, $2, $3, $4)
RETURNING id::text, granted_at
`
	res := grant
	if res.AccessLevel == "" {
		res.AccessLevel = domain.AccessLevelFull
	}
	err := r.pool.QueryRow(ctx, q, grant.MemberID, grant.ProductID, grant.OrderID, res.AccessLevel).
		Scan(&res.ID, &res.GrantedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Printf("access repo: insert order_id=%s product_id=%s already granted", grant.OrderID, grant.ProductID)
			return nil, domain.ErrAlreadyApplied
		}
		r.logger.Printf("access repo: insert order_id=%s product_id=%s error=%v", grant.OrderID, grant.ProductID, err)
		return nil, err
	}
	r.logger.Printf("access repo: granted order_id=%s product_id=%s member_id=%s", res.OrderID, res.ProductID, res.MemberID)
	return &res, nil
}

func (r *postgresRepo) ListByOrder(ctx context.Context, orderID string) ([]domain.DigitalAccessGrant, error) {
	return r.list(ctx, `
SELECT id::text, member_id::text, product_id::text, order_id::text, access_level, granted_at
FROM digital_access_grants
WHERE order_id = $1
ORDER BY granted_at
`, orderID)
}

func (r *postgresRepo) ListByMember(ctx context.Context, memberID string) ([]domain.DigitalAccessGrant, error) {
	return r.list(ctx, `
SELECT id::text, member_id::text, product_id::text, order_id::text, access_level, granted_at
FROM digital_access_grants
WHERE member_id = $1
ORDER BY granted_at DESC
`, memberID)
}

func (r *postgresRepo) list(ctx context.Context, q, arg string) ([]domain.DigitalAccessGrant, error) {
	rows, err := r.pool.Query(ctx, q, arg)
	if err != nil {
		r.logger.Printf("access repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.DigitalAccessGrant
	for rows.Next() {
		var g domain.DigitalAccessGrant
		if err := rows.Scan(&g.ID, &g.MemberID, &g.ProductID, &g.OrderID, &g.AccessLevel, &g.GrantedAt); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, rows.Err()
}
