package loyalty

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"namc-portal/internal/domain"
)

// Result reports one point award. On a repeat call for an order that already
// earned points, PointsAwarded echoes the original award; TierUpdated is set
// only when the call changed the stored tier.
type Result struct {
	Success        bool   `json:"success"`
	PointsAwarded  int64  `json:"pointsAwarded"`
	NewTotalPoints int64  `json:"newTotalPoints"`
	TierUpdated    bool   `json:"tierUpdated,omitempty"`
	NewTier        string `json:"newTier,omitempty"`
}

type orderRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

type memberRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	AddPoints(ctx context.Context, id string, points int64) (int64, error)
	SetTier(ctx context.Context, id, tier string) error
}

type ledgerRepo interface {
	Insert(ctx context.Context, entry domain.LoyaltyEntry) (*domain.LoyaltyEntry, error)
	GetByOrder(ctx context.Context, orderID string) (*domain.LoyaltyEntry, error)
}

type Service struct {
	orders  orderRepo
	members memberRepo
	ledger  ledgerRepo
	logger  *log.Logger
}

func New(orders orderRepo, members memberRepo, ledger ledgerRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, members: members, ledger: ledger, logger: logger}
}

// AwardForOrder computes and persists the loyalty points earned by an order:
// floor(total dollars) plus five per digital item, scaled by the member's tier
// multiplier and floored. The ledger's per-order uniqueness makes repeat calls
// no-ops.
func (s *Service) AwardForOrder(ctx context.Context, orderID string) (*Result, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", orderID, err)
	}
	member, err := s.members.GetByID(ctx, order.MemberID)
	if err != nil {
		return nil, fmt.Errorf("load member %s: %w", order.MemberID, err)
	}

	base := order.TotalCents/100 + 5*int64(order.DigitalQuantity())
	multiplier := domain.TierMultiplier(member.Tier)
	points := int64(math.Floor(float64(base) * multiplier))

	entry, err := s.ledger.Insert(ctx, domain.LoyaltyEntry{
		MemberID:   member.ID,
		OrderID:    order.ID,
		Points:     points,
		Multiplier: multiplier,
	})
	if errors.Is(err, domain.ErrAlreadyApplied) {
		existing, lookupErr := s.ledger.GetByOrder(ctx, order.ID)
		if lookupErr != nil {
			return nil, fmt.Errorf("load existing award for order %s: %w", order.ID, lookupErr)
		}
		res := &Result{Success: true, PointsAwarded: existing.Points, NewTotalPoints: member.Points}
		// A prior run can have persisted the points and failed before the
		// tier write; the stored tier must track the stored total.
		if wantTier := domain.TierForPoints(member.Points); wantTier != member.Tier {
			if err := s.members.SetTier(ctx, member.ID, wantTier); err != nil {
				return nil, fmt.Errorf("update tier for member %s: %w", member.ID, err)
			}
			res.TierUpdated = true
			res.NewTier = wantTier
			s.logger.Printf("loyalty: member_id=%s tier %s -> %s total=%d", member.ID, member.Tier, wantTier, member.Points)
		}
		s.logger.Printf("loyalty: order_id=%s already awarded points=%d", order.ID, existing.Points)
		return res, nil
	}
	if err != nil {
		return nil, fmt.Errorf("record award for order %s: %w", order.ID, err)
	}

	newTotal, err := s.members.AddPoints(ctx, member.ID, entry.Points)
	if err != nil {
		return nil, fmt.Errorf("add points for member %s: %w", member.ID, err)
	}

	res := &Result{Success: true, PointsAwarded: entry.Points, NewTotalPoints: newTotal}
	if newTier := domain.TierForPoints(newTotal); newTier != member.Tier {
		if err := s.members.SetTier(ctx, member.ID, newTier); err != nil {
			return nil, fmt.Errorf("update tier for member %s: %w", member.ID, err)
		}
		res.TierUpdated = true
		res.NewTier = newTier
		s.logger.Printf("loyalty: member_id=%s tier %s -> %s total=%d", member.ID, member.Tier, newTier, newTotal)
	}
	s.logger.Printf("loyalty: order_id=%s member_id=%s points=%d total=%d", order.ID, member.ID, entry.Points, newTotal)
	return res, nil
}
