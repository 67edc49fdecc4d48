package member

import (
	"context"

	"namc-portal/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	// AddPoints increments the member's cumulative total and returns the new value.
	AddPoints(ctx context.Context, id string, points int64) (int64, error)
	SetTier(ctx context.Context, id, tier string) error
	Upsert(ctx context.Context, m domain.Member) (*domain.Member, error)
}
