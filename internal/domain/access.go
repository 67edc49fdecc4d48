package domain

import "time"

// AccessLevelFull is the only level granted today; the column exists so
// time-boxed or preview access can be added without a migration.
const AccessLevelFull = "FULL"

// DigitalAccessGrant unlocks a digital product for a member, tied to the
// purchase that paid for it. At most one grant exists per (order, product).
type DigitalAccessGrant struct {
	ID          string    `json:"id"`
	MemberID    string    `json:"memberId"`
	ProductID   string    `json:"productId"`
	OrderID     string    `json:"orderId"`
	AccessLevel string    `json:"accessLevel"`
	GrantedAt   time.Time `json:"grantedAt"`
}
