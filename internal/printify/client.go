package printify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"namc-portal/internal/domain"

	"github.com/google/uuid"
)

// Client talks to the Printify API for the portal's print-on-demand shop.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// OrderRef is Printify's identification of a created order.
type OrderRef struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
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
}

type createOrderPayload struct {
	ExternalID string            `json:"external_id"`
	Label      string            `json:"label"`
	LineItems  []lineItemPayload `json:"line_items"`
}

// CreateOrderFromLocal creates a Printify order draft for the print-on-demand
// items of a local order. The draft stays out of production until
// SendOrderToProduction is called.
func (c *Client) CreateOrderFromLocal(ctx context.Context, order domain.Order, items []domain.OrderItem) (*OrderRef, error) {
	payload := createOrderPayload{
		ExternalID: order.ID,
		Label:      "namc-" + uuid.NewString(),
	}
	for _, item := range items {
		payload.LineItems = append(payload.LineItems, lineItemPayload{
			ProductID: item.Product.PrintifyProductID,
			Quantity:  item.Quantity,
		})
	}

	var res OrderRef
	if err := c.post(ctx, "/orders.json", payload, &res); err != nil {
		return nil, fmt.Errorf("printify create order: %w", err)
	}
	return &res, nil
}

// SendOrderToProduction instructs Printify to start manufacturing.
func (c *Client) SendOrderToProduction(ctx context.Context, printifyOrderID string) error {
	path := fmt.Sprintf("/orders/%s/send_to_production.json", printifyOrderID)
	if err := c.post(ctx, path, struct{}{}, nil); err != nil {
		return fmt.Errorf("printify send to production: %w", err)
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
	req.Header.Set("Authorization", "Bearer "+c.token)

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
