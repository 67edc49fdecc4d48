package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"namc-portal/internal/domain"
	"namc-portal/internal/lock"
	"namc-portal/internal/printify"
	accesssvc "namc-portal/internal/service/access"
	loyaltysvc "namc-portal/internal/service/loyalty"
	"namc-portal/internal/shopify"

	"golang.org/x/sync/errgroup"
)

type orderRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	SetShopifyOrderID(ctx context.Context, orderID, shopifyOrderID string) error
	SetPrintifyOrderID(ctx context.Context, orderID, printifyOrderID string) error
	SetStatus(ctx context.Context, orderID, status string) error
}

type stepRepo interface {
	MarkDone(ctx context.Context, orderID, step string) error
	IsDone(ctx context.Context, orderID, step string) (bool, error)
}

type shopifyVendor interface {
	CreateOrderFromLocal(ctx context.Context, order domain.Order, items []domain.OrderItem) (*shopify.OrderRef, error)
}

type printifyVendor interface {
	CreateOrderFromLocal(ctx context.Context, order domain.Order, items []domain.OrderItem) (*printify.OrderRef, error)
	SendOrderToProduction(ctx context.Context, printifyOrderID string) error
}

type inventoryUpdater interface {
	UpdateAfterOrder(ctx context.Context, orderID string) error
}

type accessGranter interface {
	GrantForOrder(ctx context.Context, orderID string) (*accesssvc.Result, error)
}

type loyaltyEngine interface {
	AwardForOrder(ctx context.Context, orderID string) (*loyaltysvc.Result, error)
}

// Service sequences the fulfillment steps for one paid order and aggregates
// step outcomes into a single result. Steps never abort the run: each failure
// is recorded and the remaining steps still execute, so a failed Printify
// submission cannot undo a Shopify order or erase awarded points.
type Service struct {
	orders    orderRepo
	steps     stepRepo
	shopify   shopifyVendor
	printify  printifyVendor
	inventory inventoryUpdater
	access    accessGranter
	loyalty   loyaltyEngine
	locker    lock.Locker
	logger    *log.Logger
}

func New(orders orderRepo, steps stepRepo, sh shopifyVendor, pr printifyVendor,
	inv inventoryUpdater, acc accessGranter, loy loyaltyEngine, locker lock.Locker, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		orders:    orders,
		steps:     steps,
		shopify:   sh,
		printify:  pr,
		inventory: inv,
		access:    acc,
		loyalty:   loy,
		locker:    locker,
		logger:    logger,
	}
}

// ProcessOrder runs the fulfillment sequence for orderID. It returns an error
// only when the order cannot be loaded or another run holds the per-order
// lock; every step-level failure lands in the result's Errors instead.
//
// Completed work is never re-applied: vendor order ids persisted on the order
// skip vendor creation, step-completion markers skip the inventory decrement
// and production submission, and the loyalty ledger and grant tables enforce
// per-order uniqueness. Re-invocation therefore retries only what is missing.
func (s *Service) ProcessOrder(ctx context.Context, orderID string) (*domain.FulfillmentResult, error) {
	release, err := s.locker.Acquire(ctx, "order:"+orderID)
	if err != nil {
		if errors.Is(err, lock.ErrHeld) {
			return nil, domain.ErrFulfillmentInProgress
		}
		return nil, err
	}
	defer release()

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", orderID, err)
	}

	result := &domain.FulfillmentResult{OrderID: order.ID, Errors: []string{}}

	s.createVendorOrders(ctx, order, result)
	s.updateInventory(ctx, order, result)
	inProduction := s.submitToProduction(ctx, order, result)
	s.grantDigitalAccess(ctx, order, result)
	s.awardLoyaltyPoints(ctx, order, result)

	result.Success = result.Steps.OrderCreation && result.Steps.InventoryUpdate && result.Steps.LoyaltyPoints
	switch {
	case result.Success && inProduction:
		result.Status = domain.OrderStatusInProduction
	case result.Success:
		result.Status = domain.OrderStatusConfirmed
	default:
		result.Status = domain.OrderStatusProcessing
	}
	if err := s.orders.SetStatus(ctx, order.ID, result.Status); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("persist order status: %v", err))
	}

	s.logger.Printf("fulfillment: order_id=%s success=%v status=%s errors=%d",
		order.ID, result.Success, result.Status, len(result.Errors))
	return result, nil
}

// createVendorOrders partitions line items by vendor routing and dispatches
// the non-empty partitions concurrently. The partitions are independent: one
// vendor's failure never blocks the other, and each success is persisted on
// the order immediately. A vendor order id already on the record means that
// partition completed on an earlier run.
func (s *Service) createVendorOrders(ctx context.Context, order *domain.Order, result *domain.FulfillmentResult) {
	var shopifyItems, printifyItems []domain.OrderItem
	for _, item := range order.Items {
		switch {
		case item.Product.ShopifyProductID != "":
			shopifyItems = append(shopifyItems, item)
		case item.Product.PrintifyProductID != "":
			printifyItems = append(printifyItems, item)
		}
	}

	shopifyNeeded := len(shopifyItems) > 0 && order.ShopifyOrderID == ""
	printifyNeeded := len(printifyItems) > 0 && order.PrintifyOrderID == ""

	var shopifyErr, printifyErr error
	var g errgroup.Group
	if shopifyNeeded {
		g.Go(func() error {
			ref, err := s.shopify.CreateOrderFromLocal(ctx, *order, shopifyItems)
			if err != nil {
				shopifyErr = err
				return nil
			}
			if err := s.orders.SetShopifyOrderID(ctx, order.ID, ref.ID); err != nil {
				shopifyErr = fmt.Errorf("persist shopify order id: %w", err)
				return nil
			}
			order.ShopifyOrderID = ref.ID
			return nil
		})
	}
	if printifyNeeded {
		g.Go(func() error {
			ref, err := s.printify.CreateOrderFromLocal(ctx, *order, printifyItems)
			if err != nil {
				printifyErr = err
				return nil
			}
			if err := s.orders.SetPrintifyOrderID(ctx, order.ID, ref.ID); err != nil {
				printifyErr = fmt.Errorf("persist printify order id: %w", err)
				return nil
			}
			order.PrintifyOrderID = ref.ID
			return nil
		})
	}
	g.Wait()

	if shopifyErr != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("shopify order creation: %v", shopifyErr))
	}
	if printifyErr != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("printify order creation: %v", printifyErr))
	}

	shopifyDone := len(shopifyItems) == 0 || order.ShopifyOrderID != ""
	printifyDone := len(printifyItems) == 0 || order.PrintifyOrderID != ""
	// A fully routed order counts as created; otherwise any vendor success
	// still counts so the other path can be retried without blocking.
	result.Steps.OrderCreation = (shopifyDone && printifyDone) ||
		(len(shopifyItems) > 0 && order.ShopifyOrderID != "") ||
		(len(printifyItems) > 0 && order.PrintifyOrderID != "")
}

func (s *Service) updateInventory(ctx context.Context, order *domain.Order, result *domain.FulfillmentResult) {
	done, err := s.steps.IsDone(ctx, order.ID, domain.StepInventoryUpdate)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("inventory update: %v", err))
		return
	}
	if done {
		result.Steps.InventoryUpdate = true
		return
	}
	if err := s.inventory.UpdateAfterOrder(ctx, order.ID); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("inventory update: %v", err))
		return
	}
	if err := s.steps.MarkDone(ctx, order.ID, domain.StepInventoryUpdate); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("inventory update: %v", err))
		return
	}
	result.Steps.InventoryUpdate = true
}

func (s *Service) submitToProduction(ctx context.Context, order *domain.Order, result *domain.FulfillmentResult) bool {
	if order.PrintifyOrderID == "" {
		return false
	}
	done, err := s.steps.IsDone(ctx, order.ID, domain.StepPrintifySubmission)
	if err != nil {
		result.Steps.PrintifySubmission = boolPtr(false)
		result.Errors = append(result.Errors, fmt.Sprintf("printify submission: %v", err))
		return false
	}
	if done {
		result.Steps.PrintifySubmission = boolPtr(true)
		return true
	}
	if err := s.printify.SendOrderToProduction(ctx, order.PrintifyOrderID); err != nil {
		result.Steps.PrintifySubmission = boolPtr(false)
		result.Errors = append(result.Errors, fmt.Sprintf("printify submission: %v", err))
		return false
	}
	if err := s.steps.MarkDone(ctx, order.ID, domain.StepPrintifySubmission); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("printify submission: %v", err))
	}
	result.Steps.PrintifySubmission = boolPtr(true)
	return true
}

func (s *Service) grantDigitalAccess(ctx context.Context, order *domain.Order, result *domain.FulfillmentResult) {
	if !order.HasDigitalItems() {
		return
	}
	res, err := s.access.GrantForOrder(ctx, order.ID)
	if err != nil {
		result.Steps.DigitalAccess = boolPtr(false)
		result.Errors = append(result.Errors, fmt.Sprintf("digital access: %v", err))
		return
	}
	result.Steps.DigitalAccess = boolPtr(res.Success)
	result.GrantedProducts = res.GrantedProducts
	result.Errors = append(result.Errors, res.Errors...)
}

func (s *Service) awardLoyaltyPoints(ctx context.Context, order *domain.Order, result *domain.FulfillmentResult) {
	res, err := s.loyalty.AwardForOrder(ctx, order.ID)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("loyalty points: %v", err))
		return
	}
	result.Steps.LoyaltyPoints = true
	result.PointsAwarded = res.PointsAwarded
	result.NewTotalPoints = res.NewTotalPoints
	result.TierUpdated = res.TierUpdated
	result.NewTier = res.NewTier
}

func boolPtr(v bool) *bool {
	return &v
}
