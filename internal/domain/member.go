package domain

import "time"

// Membership tiers, derived from cumulative loyalty points.
const (
	TierRegular   = "REGULAR"
	TierPremium   = "PREMIUM"
	TierExecutive = "EXECUTIVE"
)

// Tier breakpoints and earning multipliers.
const (
	executiveThreshold = 10000
	premiumThreshold   = 5000
)

type Member struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Tier      string    `json:"tier"`
	Points    int64     `json:"points"`
	CreatedAt time.Time `json:"createdAt"`
}

// TierForPoints maps a cumulative point total to its membership tier.
func TierForPoints(points int64) string {
	switch {
	case points >= executiveThreshold:
		return TierExecutive
	case points >= premiumThreshold:
		return TierPremium
	default:
		return TierRegular
	}
}

// TierMultiplier returns the point-earning multiplier for a tier.
// Unknown tiers earn at the REGULAR rate.
func TierMultiplier(tier string) float64 {
	switch tier {
	case TierExecutive:
		return 2.0
	case TierPremium:
		return 1.5
	default:
		return 1.0
	}
}
