package member

import (
	"context"
	"errors"
	"io"
	"log"

	"namc-portal/internal/domain"

	"github.com/jackc/pgx/v5"
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

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	const q = `
SELECT id::text, email, COALESCE(first_name, ''), COALESCE(last_name, ''), tier, points, created_at
FROM members
WHERE id = $1
`
	var m domain.Member
	err := r.pool.QueryRow(ctx, q, id).Scan(&m.ID, &m.Email, &m.FirstName, &m.LastName, &m.Tier, &m.Points, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("member repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("member repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &m, nil
}

func (r *postgresRepo) AddPoints(ctx context.Context, id string, points int64) (int64, error) {
	const q = `
UPDATE members
SET points = points + $1
WHERE id = $2
RETURNING points
`
	var total int64
	if err := r.pool.QueryRow(ctx, q, points, id).Scan(&total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		r.logger.Printf("member repo: add points id=%s points=%d error=%v", id, points, err)
		return 0, err
	}
	r.logger.Printf("member repo: points id=%s awarded=%d total=%d", id, points, total)
	return total, nil
}

func (r *postgresRepo) SetTier(ctx context.Context, id, tier string) error {
	const q = `UPDATE members SET tier = $1 WHERE id = $2`
	tag, err := r.pool.Exec(ctx, q, tier, id)
	if err != nil {
		r.logger.Printf("member repo: set tier id=%s tier=%s error=%v", id, tier, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("member repo: tier id=%s tier=%s", id, tier)
	return nil
}

func (r *postgresRepo) Upsert(ctx context.Context, m domain.Member) (*domain.Member, error) {
	const q = `
INSERT INTO members (email, first_name, last_name, tier, points)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5)
ON CONFLICT (email) DO UPDATE SET
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    tier = EXCLUDED.tier,
    points = EXCLUDED.points
RETURNING id::text, created_at
`
	res := m
	if res.Tier == "" {
		res.Tier = domain.TierRegular
	}
	err := r.pool.QueryRow(ctx, q, m.Email, m.FirstName, m.LastName, res.Tier, m.Points).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("member repo: upsert email=%s error=%v", m.Email, err)
		return nil, err
	}
	return &res, nil
}
