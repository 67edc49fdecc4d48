package domain

import "time"

// LoyaltyEntry is one point-award event in a member's ledger. At most one
// entry exists per order.
type LoyaltyEntry struct {
	ID         string    `json:"id"`
	MemberID   string    `json:"memberId"`
	OrderID    string    `json:"orderId"`
	Points     int64     `json:"points"`
	Multiplier float64   `json:"multiplier"`
	AwardedAt  time.Time `json:"awardedAt"`
}
