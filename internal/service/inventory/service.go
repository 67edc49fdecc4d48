package inventory

import (
	"context"
	"fmt"
	"io"
	"log"

	"namc-portal/internal/domain"
)

type orderRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

type productRepo interface {
	AdjustInventory(ctx context.Context, id string, quantity int) (int, error)
}

type shopifyClient interface {
	UpdateInventoryLevel(ctx context.Context, inventoryItemID string, available int) error
}

type Service struct {
	orders   orderRepo
	products productRepo
	shopify  shopifyClient
	logger   *log.Logger
}

func New(orders orderRepo, products productRepo, shopify shopifyClient, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, products: products, shopify: shopify, logger: logger}
}

// UpdateAfterOrder decrements local stock for every stocked line item, clamped
// at zero. Digital and print-on-demand products are skipped. The local write
// is authoritative; the Shopify level push is best effort and its failure is
// logged, never propagated. The call fails only when the order cannot be
// loaded.
func (s *Service) UpdateAfterOrder(ctx context.Context, orderID string) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load order %s: %w", orderID, err)
	}

	for _, item := range order.Items {
		if item.Product.IsDigital || item.Product.PrintOnDemand() {
			continue
		}
		level, err := s.products.AdjustInventory(ctx, item.ProductID, item.Quantity)
		if err != nil {
			s.logger.Printf("inventory: adjust order_id=%s product_id=%s error=%v", orderID, item.ProductID, err)
			continue
		}
		if item.Product.ShopifyInventoryItemID == "" {
			continue
		}
		if err := s.shopify.UpdateInventoryLevel(ctx, item.Product.ShopifyInventoryItemID, level); err != nil {
			s.logger.Printf("inventory: shopify sync order_id=%s product_id=%s error=%v", orderID, item.ProductID, err)
		}
	}
	return nil
}
