package domain

// Step-completion marker names, persisted per order so a re-run can skip
// work that already completed. Only the steps without a natural idempotency
// key need a marker: vendor order creation is keyed by the persisted vendor
// ids, digital access and loyalty by unique ledger rows.
const (
	StepInventoryUpdate    = "inventory_update"
	StepPrintifySubmission = "printify_submission"
)

// FulfillmentSteps records the outcome of each fulfillment step. The Printify
// and digital-access fields are nil when the order had no work for that step.
type FulfillmentSteps struct {
	OrderCreation      bool  `json:"orderCreation"`
	InventoryUpdate    bool  `json:"inventoryUpdate"`
	PrintifySubmission *bool `json:"printifySubmission,omitempty"`
	DigitalAccess      *bool `json:"digitalAccess,omitempty"`
	LoyaltyPoints      bool  `json:"loyaltyPoints"`
}

// FulfillmentResult is the aggregate outcome returned to the caller. Success
// reflects the order-creation, inventory and loyalty steps only; Printify
// submission and digital access are recoverable side effects and their
// failures are reported via Errors without blocking confirmation.
type FulfillmentResult struct {
	OrderID         string           `json:"orderId"`
	Success         bool             `json:"success"`
	Status          string           `json:"status"`
	Steps           FulfillmentSteps `json:"fulfillmentSteps"`
	GrantedProducts []string         `json:"grantedProducts,omitempty"`
	PointsAwarded   int64            `json:"pointsAwarded"`
	NewTotalPoints  int64            `json:"newTotalPoints"`
	TierUpdated     bool             `json:"tierUpdated,omitempty"`
	NewTier         string           `json:"newTier,omitempty"`
	Errors          []string         `json:"errors"`
}
