package domain

import "time"

// Order fulfillment statuses. An order is created PROCESSING at checkout and
// only ever moves forward; rows are never deleted.
const (
	OrderStatusProcessing   = "PROCESSING"
	OrderStatusConfirmed    = "CONFIRMED"
	OrderStatusInProduction = "IN_PRODUCTION"
)

// Payment statuses set by the checkout flow before fulfillment runs.
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
)

type Order struct {
	ID              string      `json:"id"`
	MemberID        string      `json:"memberId"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"paymentStatus"`
	TotalCents      int64       `json:"totalCents"`
	Currency        string      `json:"currency"`
	ShopifyOrderID  string      `json:"shopifyOrderId,omitempty"`
	PrintifyOrderID string      `json:"printifyOrderId,omitempty"`
	Items           []OrderItem `json:"items,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type OrderItem struct {
	ID             string  `json:"id"`
	OrderID        string  `json:"orderId"`
	ProductID      string  `json:"productId"`
	Quantity       int     `json:"quantity"`
	UnitPriceCents int64   `json:"unitPriceCents"`
	Product        Product `json:"product"`
}

// DigitalQuantity sums quantities across the order's digital line items.
func (o Order) DigitalQuantity() int {
	total := 0
	for _, item := range o.Items {
		if item.Product.IsDigital {
			total += item.Quantity
		}
	}
	return total
}

// HasDigitalItems reports whether any line item unlocks digital content.
func (o Order) HasDigitalItems() bool {
	for _, item := range o.Items {
		if item.Product.IsDigital {
			return true
		}
	}
	return false
}
