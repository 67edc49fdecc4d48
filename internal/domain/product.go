package domain

import "time"

type Product struct {
	ID                     string                 `json:"id"`
	SKU                    string                 `json:"sku"`
	Name                   string                 `json:"name"`
	PriceCents             int64                  `json:"priceCents"`
	Currency               string                 `json:"currency"`
	Inventory              int                    `json:"inventory"`
	IsDigital              bool                   `json:"isDigital"`
	ShopifyProductID       string                 `json:"shopifyProductId,omitempty"`
	ShopifyInventoryItemID string                 `json:"shopifyInventoryItemId,omitempty"`
	PrintifyProductID      string                 `json:"printifyProductId,omitempty"`
	Attributes             map[string]interface{} `json:"attributes,omitempty"`
	CreatedAt              time.Time              `json:"createdAt"`
}

// PrintOnDemand reports whether the product is fulfilled by the Printify path.
// Such products carry effectively unlimited virtual inventory.
func (p Product) PrintOnDemand() bool {
	return p.PrintifyProductID != ""
}
