package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"namc-portal/internal/domain"
)

// Client talks to the Shopify Admin API for the portal's shop.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// OrderRef is Shopify's identification of a created order.
type OrderRef struct {
	ID          string `json:"id"`
	OrderNumber int64  `json:"order_number"`
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type lineItemPayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	PriceSet  string `json:"price"`
}

type createOrderPayload struct {
	Order struct {
		ExternalID string            `json:"external_id"`
		Currency   string            `json:"currency"`
		LineItems  []lineItemPayload `json:"line_items"`
	} `json:"order"`
}

type createOrderResponse struct {
	Order OrderRef `json:"order"`
}

// CreateOrderFromLocal creates a Shopify order mirroring the given local order
// items and returns Shopify's reference for it.
func (c *Client) CreateOrderFromLocal(ctx context.Context, order domain.Order, items []domain.OrderItem) (*OrderRef, error) {
	var payload createOrderPayload
	payload.Order.ExternalID = order.ID
	payload.Order.Currency = order.Currency
	for _, item := range items {
		payload.Order.LineItems = append(payload.Order.LineItems, lineItemPayload{
			ProductID: item.Product.ShopifyProductID,
			Quantity:  item.Quantity,
			PriceSet:  centsToPrice(item.UnitPriceCents),
		})
	}

	var res createOrderResponse
	if err := c.post(ctx, "/orders.json", payload, &res); err != nil {
		return nil, fmt.Errorf("shopify create order: %w", err)
	}
	return &res.Order, nil
}

type inventoryPayload struct {
	InventoryItemID string `json:"inventory_item_id"`
	Available       int    `json:"available"`
}

// UpdateInventoryLevel pushes a new available quantity for an inventory item.
func (c *Client) UpdateInventoryLevel(ctx context.Context, inventoryItemID string, available int) error {
	payload := inventoryPayload{InventoryItemID: inventoryItemID, Available: available}
	if err := c.post(ctx, "/inventory_levels/set.json", payload, nil); err != nil {
		return fmt.Errorf("shopify inventory level: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func centsToPrice(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
