package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"namc-portal/internal/domain"
)

func TestCreateOrderFromLocal(t *testing.T) {
	var gotPath, gotToken string
	var gotPayload createOrderPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(createOrderResponse{Order: OrderRef{ID: "shop-9", OrderNumber: 1042}})
	}))
	defer srv.Close()

	client := New(srv.URL, "secret-token")
	order := domain.Order{ID: "o1", Currency: "USD"}
	items := []domain.OrderItem{
		{Quantity: 2, UnitPriceCents: 2499, Product: domain.Product{ShopifyProductID: "sp-1"}},
	}

	ref, err := client.CreateOrderFromLocal(context.Background(), order, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "shop-9" || ref.OrderNumber != 1042 {
		t.Fatalf("bad ref: %+v", ref)
	}
	if gotPath != "/orders.json" {
		t.Fatalf("expected /orders.json, got %s", gotPath)
	}
	if gotToken != "secret-token" {
		t.Fatalf("expected access token header, got %q", gotToken)
	}
	if gotPayload.Order.ExternalID != "o1" || len(gotPayload.Order.LineItems) != 1 {
		t.Fatalf("bad payload: %+v", gotPayload)
	}
	if gotPayload.Order.LineItems[0].PriceSet != "24.99" {
		t.Fatalf("expected price 24.99, got %s", gotPayload.Order.LineItems[0].PriceSet)
	}
}

func TestCreateOrderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := New(srv.URL, "t")
	_, err := client.CreateOrderFromLocal(context.Background(), domain.Order{ID: "o1"}, nil)
	if err == nil {
		t.Fatalf("expected error on 429")
	}
}

func TestUpdateInventoryLevel(t *testing.T) {
	var gotPayload inventoryPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/inventory_levels/set.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, "t")
	if err := client.UpdateInventoryLevel(context.Background(), "inv-7", 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPayload.InventoryItemID != "inv-7" || gotPayload.Available != 42 {
		t.Fatalf("bad payload: %+v", gotPayload)
	}
}

func TestCentsToPrice(t *testing.T) {
	cases := map[int64]string{
		0:     "0.00",
		5:     "0.05",
		100:   "1.00",
		2499:  "24.99",
		10000: "100.00",
	}
	for cents, want := range cases {
		if got := centsToPrice(cents); got != want {
			t.Errorf("centsToPrice(%d) = %s, want %s", cents, got, want)
		}
	}
}
