package access

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"namc-portal/internal/domain"
)

// Result reports per-item grant outcomes. Success is true only when Errors is
// empty. A grant that already existed counts as granted.
type Result struct {
	Success         bool     `json:"success"`
	GrantedProducts []string `json:"grantedProducts"`
	Errors          []string `json:"errors"`
}

type orderRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

type grantRepo interface {
	Insert(ctx context.Context, grant domain.DigitalAccessGrant) (*domain.DigitalAccessGrant, error)
}

type Service struct {
	orders orderRepo
	grants grantRepo
	logger *log.Logger
}

func New(orders orderRepo, grants grantRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, grants: grants, logger: logger}
}

// GrantForOrder unlocks every digital line item for the purchasing member.
// Items are handled independently: a failed grant is recorded in Errors and
// never blocks or corrupts the remaining items.
func (s *Service) GrantForOrder(ctx context.Context, orderID string) (*Result, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", orderID, err)
	}

	res := &Result{GrantedProducts: []string{}, Errors: []string{}}
	for _, item := range order.Items {
		if !item.Product.IsDigital {
			continue
		}
		_, err := s.grants.Insert(ctx, domain.DigitalAccessGrant{
			MemberID:    order.MemberID,
			ProductID:   item.ProductID,
			OrderID:     order.ID,
			AccessLevel: domain.AccessLevelFull,
		})
		if err != nil && !errors.Is(err, domain.ErrAlreadyApplied) {
			res.Errors = append(res.Errors, fmt.Sprintf("grant access to %s: %v", item.Product.Name, err))
			continue
		}
		res.GrantedProducts = append(res.GrantedProducts, item.Product.Name)
	}
	res.Success = len(res.Errors) == 0
	s.logger.Printf("access: order_id=%s granted=%d errors=%d", orderID, len(res.GrantedProducts), len(res.Errors))
	return res, nil
}
