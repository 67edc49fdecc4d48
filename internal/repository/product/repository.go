package product

import (
	"context"

	"namc-portal/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// AdjustInventory subtracts quantity from the stored level, clamped at
	// zero, and returns the new level.
	AdjustInventory(ctx context.Context, id string, quantity int) (int, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
