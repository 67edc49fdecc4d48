package order

import (
	"context"
	"errors"
	"fmt"

	"namc-portal/internal/domain"
	orderrepo "namc-portal/internal/repository/order"
)

type repo interface {
	Create(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type memberRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Member, error)
}

// ErrInvalidInput marks checkout requests rejected before any write.
var ErrInvalidInput = errors.New("invalid order input")

type Service struct {
	repo     repo
	products productRepo
	members  memberRepo
}

func New(repo repo, products productRepo, members memberRepo) *Service {
	return &Service{repo: repo, products: products, members: members}
}

type CreateInput struct {
	MemberID string            `json:"memberId"`
	Currency string            `json:"currency"`
	Items    []CreateItemInput `json:"items"`
}

type CreateItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Create records a checkout-time order. Unit prices are snapshotted from the
// catalog so later price changes do not alter the order total.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	if in.MemberID == "" {
		return nil, fmt.Errorf("%w: memberId required", ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrInvalidInput)
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}

	if _, err := s.members.GetByID(ctx, in.MemberID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: member not found", ErrInvalidInput)
		}
		return nil, err
	}

	repoIn := orderrepo.CreateOrderInput{MemberID: in.MemberID, Currency: in.Currency}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: product %s not found", ErrInvalidInput, item.ProductID)
			}
			return nil, err
		}
		repoIn.Items = append(repoIn.Items, orderrepo.CreateItemInput{
			ProductID:      product.ID,
			Quantity:       item.Quantity,
			UnitPriceCents: product.PriceCents,
		})
	}

	return s.repo.Create(ctx, repoIn)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}
