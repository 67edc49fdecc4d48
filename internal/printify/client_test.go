package printify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"namc-portal/internal/domain"
)

func TestCreateOrderFromLocal(t *testing.T) {
	var gotAuth string
	var gotPayload createOrderPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/orders.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(OrderRef{ID: "print-5", ExternalID: "o1"})
	}))
	defer srv.Close()

	client := New(srv.URL, "pod-token")
	order := domain.Order{ID: "o1"}
	items := []domain.OrderItem{
		{Quantity: 3, Product: domain.Product{PrintifyProductID: "pp-1"}},
	}

	ref, err := client.CreateOrderFromLocal(context.Background(), order, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "print-5" {
		t.Fatalf("bad ref: %+v", ref)
	}
	if gotAuth != "Bearer pod-token" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if gotPayload.ExternalID != "o1" || len(gotPayload.LineItems) != 1 || gotPayload.LineItems[0].Quantity != 3 {
		t.Fatalf("bad payload: %+v", gotPayload)
	}
	if gotPayload.Label == "" {
		t.Fatalf("expected a generated label")
	}
}

func TestSendOrderToProduction(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, "t")
	if err := client.SendOrderToProduction(context.Background(), "print-5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/orders/print-5/send_to_production.json" {
		t.Fatalf("unexpected path %s", gotPath)
	}
}

func TestSendOrderToProductionErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "draft missing", http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(srv.URL, "t")
	if err := client.SendOrderToProduction(context.Background(), "ghost"); err == nil {
		t.Fatalf("expected error on 404")
	}
}
