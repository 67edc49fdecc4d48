package order

import (
	"context"

	"namc-portal/internal/domain"
)

// CreateOrderInput carries checkout data for a new order. Item unit prices are
// snapshotted from the catalog at creation time.
type CreateOrderInput struct {
	MemberID string
	Currency string
	Items    []CreateItemInput
}

type CreateItemInput struct {
	ProductID      string
	Quantity       int
	UnitPriceCents int64
}

type Repository interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	// GetByID loads an order with its line items and their products.
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	SetShopifyOrderID(ctx context.Context, orderID, shopifyOrderID string) error
	SetPrintifyOrderID(ctx context.Context, orderID, printifyOrderID string) error
	SetStatus(ctx context.Context, orderID, status string) error
	// ListStuck returns paid orders still PROCESSING whose last update is older
	// than the grace period, oldest first.
	ListStuck(ctx context.Context, olderThanSeconds int, limit int) ([]domain.Order, error)
}
