package access

import (
	"context"

	"namc-portal/internal/domain"
)

type Repository interface {
	// Insert records one grant. A second insert for the same (order, product)
	// returns domain.ErrAlreadyApplied.
	Insert(ctx context.Context, grant domain.DigitalAccessGrant) (*domain.DigitalAccessGrant, error)
	ListByOrder(ctx context.Context, orderID string) ([]domain.DigitalAccessGrant, error)
	ListByMember(ctx context.Context, memberID string) ([]domain.DigitalAccessGrant, error)
}
