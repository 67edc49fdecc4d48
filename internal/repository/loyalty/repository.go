package loyalty

import (
	"context"

	"namc-portal/internal/domain"
)

type Repository interface {
	// Insert records one point-award event. A second insert for the same
	// order returns domain.ErrAlreadyApplied.
	Insert(ctx context.Context, entry domain.LoyaltyEntry) (*domain.LoyaltyEntry, error)
	GetByOrder(ctx context.Context, orderID string) (*domain.LoyaltyEntry, error)
	ListByMember(ctx context.Context, memberID string) ([]domain.LoyaltyEntry, error)
}
